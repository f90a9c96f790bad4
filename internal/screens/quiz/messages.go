package quiz

import "time"

// tickMsg drives the exam countdown once a second.
type tickMsg time.Time
