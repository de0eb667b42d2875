package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which panes stack vertically.
	LayoutCompactWidth = 90
)

// Activity view limits.
const (
	// ActivityLimit is the number of log records shown in the activity view.
	ActivityLimit = 200

	// ActivityRefresh is how often the activity view rereads the log.
	ActivityRefresh = 2 * time.Second
)
