package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dshills/tilesmith/internal/engine/grid"
	"github.com/dshills/tilesmith/internal/engine/raster"
	"github.com/dshills/tilesmith/internal/engine/tile"
	"github.com/dshills/tilesmith/internal/engine/transform"
	"github.com/dshills/tilesmith/internal/palette"
)

// command is one batch instruction.
type command struct {
	usage   string
	minArgs int
	maxArgs int
	run     func(app *Application, args []string) error
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"place":  {"place X Y [TILE]", 2, 3, cmdPlace},
		"stroke": {"stroke X Y [TILE]", 2, 3, cmdStroke},
		"line":   {"line X0 Y0 X1 Y1 [TILE]", 4, 5, cmdLine},
		"rect":   {"rect X0 Y0 X1 Y1 [TILE] [fill]", 4, 6, cmdRect},
		"circle": {"circle CX CY R [TILE] [fill]", 3, 5, cmdCircle},
		"flood":  {"flood X Y [TILE]", 2, 3, cmdFlood},
		"clear":  {"clear [TILE]", 0, 1, cmdClear},
		"brush":  {"brush SIZE", 1, 1, cmdBrush},
		"rotate": {"rotate [X0 Y0 X1 Y1]", 0, 4, cmdRotate},
		"flip":   {"flip h|v [X0 Y0 X1 Y1]", 1, 5, cmdFlip},
		"shift":  {"shift DX DY [X0 Y0 X1 Y1]", 2, 6, cmdShift},
		"resize": {"resize W H", 2, 2, cmdResize},
		"begin":  {"begin [LABEL]", 0, 1, cmdBegin},
		"end":    {"end", 0, 0, cmdEnd},
		"undo":   {"undo", 0, 0, cmdUndo},
		"redo":   {"redo", 0, 0, cmdRedo},
		"tile":   {"tile CHAR NAME [COLOR]", 2, 3, cmdTile},
		"save":   {"save [PATH]", 0, 1, cmdSave},
	}
}

// Exec runs commands from r, one per line. Blank lines and lines starting
// with ';' are skipped. Execution stops at the first failing command or
// when ctx is cancelled.
func (app *Application) Exec(ctx context.Context, r io.Reader) error {
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		if err := ctx.Err(); err != nil {
			return err
		}
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, ";") {
			continue
		}
		if err := app.ExecLine(text); err != nil {
			return &CommandError{Line: line, Command: text, Err: err}
		}
	}
	return sc.Err()
}

// ExecLine runs a single command.
func (app *Application) ExecLine(text string) error {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil
	}
	name, args := strings.ToLower(fields[0]), fields[1:]
	cmd, ok := commands[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	if len(args) < cmd.minArgs || len(args) > cmd.maxArgs {
		return fmt.Errorf("%w: usage: %s", ErrBadArguments, cmd.usage)
	}
	app.logger.Debug("command", "name", name, "args", args)
	return cmd.run(app, args)
}

// ============================================================================
// Argument parsing
// ============================================================================

func ints(args []string) ([]int, error) {
	out := make([]int, len(args))
	for i, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not an integer", ErrBadArguments, a)
		}
		out[i] = n
	}
	return out, nil
}

func (app *Application) tileArg(arg string) (tile.ID, error) {
	if utf8.RuneCountInString(arg) != 1 {
		return tile.Void, fmt.Errorf("%w: tile %q must be one character", ErrBadArguments, arg)
	}
	c, _ := utf8.DecodeRuneInString(arg)
	id := app.registry.IDOf(c)
	if id == tile.Void {
		return tile.Void, fmt.Errorf("%w: %q", ErrUnknownTile, arg)
	}
	return id, nil
}

// optionalTile parses the tile in args, or returns the default tile when
// args is empty.
func (app *Application) optionalTile(args []string) (tile.ID, error) {
	if len(args) == 0 {
		return app.editor.DefaultTile(), nil
	}
	return app.tileArg(args[0])
}

// pointsAndTile parses n integers followed by an optional tile.
func (app *Application) pointsAndTile(args []string, n int) ([]int, tile.ID, error) {
	nums, err := ints(args[:n])
	if err != nil {
		return nil, tile.Void, err
	}
	id, err := app.optionalTile(args[n:])
	if err != nil {
		return nil, tile.Void, err
	}
	return nums, id, nil
}

// shapeArgs parses n integers followed by an optional tile and an optional
// "fill" keyword.
func (app *Application) shapeArgs(args []string, n int) (nums []int, id tile.ID, filled bool, err error) {
	rest := args[n:]
	if k := len(rest); k > 0 && strings.EqualFold(rest[k-1], "fill") {
		filled = true
		rest = rest[:k-1]
	} else if k == 2 {
		return nil, tile.Void, false, fmt.Errorf("%w: expected \"fill\", got %q", ErrBadArguments, rest[1])
	}
	nums, id, err = app.pointsAndTile(append(args[:n:n], rest...), n)
	return nums, id, filled, err
}

// selectionArg parses an optional trailing rectangle. ok is false when
// args is empty.
func selectionArg(args []string) (r grid.Rect, ok bool, err error) {
	switch len(args) {
	case 0:
		return grid.Rect{}, false, nil
	case 4:
		n, err := ints(args)
		if err != nil {
			return grid.Rect{}, false, err
		}
		return grid.NewRect(n[0], n[1], n[2], n[3]), true, nil
	default:
		return grid.Rect{}, false, fmt.Errorf("%w: a selection needs four coordinates", ErrBadArguments)
	}
}

func axisArg(arg string) (transform.Axis, error) {
	switch strings.ToLower(arg) {
	case "h", "horizontal":
		return transform.Horizontal, nil
	case "v", "vertical":
		return transform.Vertical, nil
	default:
		return 0, fmt.Errorf("%w: axis must be h or v, got %q", ErrBadArguments, arg)
	}
}

// ============================================================================
// Commands
// ============================================================================

func cmdPlace(app *Application, args []string) error {
	n, id, err := app.pointsAndTile(args, 2)
	if err != nil {
		return err
	}
	app.editor.Place(n[0], n[1], id)
	return nil
}

func cmdStroke(app *Application, args []string) error {
	n, id, err := app.pointsAndTile(args, 2)
	if err != nil {
		return err
	}
	app.editor.Stroke(n[0], n[1], id)
	return nil
}

func cmdLine(app *Application, args []string) error {
	n, id, err := app.pointsAndTile(args, 4)
	if err != nil {
		return err
	}
	app.editor.Line(n[0], n[1], n[2], n[3], id)
	return nil
}

func cmdRect(app *Application, args []string) error {
	n, id, filled, err := app.shapeArgs(args, 4)
	if err != nil {
		return err
	}
	app.editor.Rect(n[0], n[1], n[2], n[3], id, filled)
	return nil
}

func cmdCircle(app *Application, args []string) error {
	n, id, filled, err := app.shapeArgs(args, 3)
	if err != nil {
		return err
	}
	app.editor.Circle(n[0], n[1], n[2], id, filled)
	return nil
}

func cmdFlood(app *Application, args []string) error {
	n, id, err := app.pointsAndTile(args, 2)
	if err != nil {
		return err
	}
	app.editor.Flood(n[0], n[1], id)
	return nil
}

func cmdClear(app *Application, args []string) error {
	id, err := app.optionalTile(args)
	if err != nil {
		return err
	}
	app.editor.Clear(id)
	return nil
}

func cmdBrush(app *Application, args []string) error {
	n, err := ints(args)
	if err != nil {
		return err
	}
	app.editor.SetBrush(raster.SquareBrush(n[0]))
	return nil
}

func cmdRotate(app *Application, args []string) error {
	sel, ok, err := selectionArg(args)
	if err != nil {
		return err
	}
	if !ok {
		app.editor.RotateMap()
		return nil
	}
	app.editor.RotateSelection(sel)
	return nil
}

func cmdFlip(app *Application, args []string) error {
	axis, err := axisArg(args[0])
	if err != nil {
		return err
	}
	sel, ok, err := selectionArg(args[1:])
	if err != nil {
		return err
	}
	if !ok {
		app.editor.FlipMap(axis)
		return nil
	}
	app.editor.FlipSelection(sel, axis)
	return nil
}

func cmdShift(app *Application, args []string) error {
	d, err := ints(args[:2])
	if err != nil {
		return err
	}
	sel, ok, err := selectionArg(args[2:])
	if err != nil {
		return err
	}
	if !ok {
		app.editor.ShiftMap(d[0], d[1])
		return nil
	}
	app.editor.ShiftSelection(sel, d[0], d[1])
	return nil
}

func cmdResize(app *Application, args []string) error {
	n, err := ints(args)
	if err != nil {
		return err
	}
	return app.editor.Resize(n[0], n[1])
}

func cmdBegin(app *Application, args []string) error {
	label := ""
	if len(args) > 0 {
		label = args[0]
	}
	return app.editor.BeginGesture(label)
}

func cmdEnd(app *Application, _ []string) error {
	return app.editor.EndGesture()
}

func cmdUndo(app *Application, _ []string) error {
	if !app.editor.Undo() {
		app.logger.Info("nothing to undo")
	}
	return nil
}

func cmdRedo(app *Application, _ []string) error {
	if !app.editor.Redo() {
		app.logger.Info("nothing to redo")
	}
	return nil
}

func cmdTile(app *Application, args []string) error {
	if utf8.RuneCountInString(args[0]) != 1 {
		return fmt.Errorf("%w: tile %q must be one character", ErrBadArguments, args[0])
	}
	c, _ := utf8.DecodeRuneInString(args[0])
	var attrs tile.Attrs
	if len(args) == 3 {
		color, err := palette.ParseColor(args[2])
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBadArguments, err)
		}
		attrs.Color = color
	}
	if id := app.registry.Register(c, args[1], attrs); id == tile.Void {
		return fmt.Errorf("registering %q: identifiers exhausted", args[0])
	}
	return nil
}

func cmdSave(app *Application, args []string) error {
	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	return app.Save(path)
}
