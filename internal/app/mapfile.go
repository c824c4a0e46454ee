package app

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"strings"
)

// readMap reads a character map, one line per row.
// A missing file reports ok false.
func readMap(path string) (lines []string, ok bool, err error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, strings.TrimRight(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, false, err
	}
	return lines, true, nil
}

// writeMap writes lines to path, one per row.
func writeMap(path string, lines []string) error {
	var sb strings.Builder
	for _, l := range lines {
		sb.WriteString(l)
		sb.WriteByte('\n')
	}
	return os.WriteFile(path, []byte(sb.String()), 0o644)
}
