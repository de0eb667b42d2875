// Package logtail reads the tail of Trolley's JSON log for the activity view.
//
// Read keeps a ring buffer of the last N lines, so memory stays bounded by N
// no matter how large the file grows, and parses each line as a log/slog
// JSON record. Lines that do not parse are returned as plain messages rather
// than dropped.
//
//	entries, err := logtail.Read(cfg.LogPath(), 200)
//	for _, e := range entries {
//		fmt.Println(e)
//	}
package logtail
