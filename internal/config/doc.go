// Package config loads Trolley's settings.
//
// # Resolution Order
//
//  1. Defaults (data dir ~/.local/share/trolley, theme Nightfox, info logs)
//  2. The TOML file at the given path, or ~/.config/trolley/config.toml
//  3. TROLLEY_* environment variables
//
// A missing config file is not an error. Blank values fall through to the
// next source down the list.
//
// # TOML Format
//
//	data_dir = "~/.local/share/trolley"
//	theme = "Slate"
//	catalog_path = "~/.config/trolley/catalog.yaml"
//	log_level = "debug"
//
// # Environment
//
//   - TROLLEY_DATA_DIR
//   - TROLLEY_THEME
//   - TROLLEY_CATALOG
//   - TROLLEY_LOG_LEVEL
//
// # Derived Paths
//
//   - DBPath: <data_dir>/trolley.db, the bbolt key-value store
//   - LogPath: <data_dir>/trolley.log, JSON log records
package config
