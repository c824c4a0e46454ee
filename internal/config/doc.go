// Package config provides the configuration system for tilesmith.
//
// Configuration is resolved in layers, higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  4. Command Line Flags      │  ← Highest priority (cmd/tilesmith)
//	├─────────────────────────────┤
//	│  3. Environment Variables   │  ← TILESMITH_*
//	├─────────────────────────────┤
//	│  2. Config File             │  ← tilesmith.toml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// # Basic Usage
//
//	cfg, err := config.Load("tilesmith.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Map.Width, cfg.Map.Height)
//
// A missing file is not an error; the defaults are used.
package config
