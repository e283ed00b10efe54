package audio

import (
	"fmt"
	"time"
)

const (
	// megabyte is the unit of the "one minute per megabyte" rule.
	megabyte = 1 << 20
	// safetyMarginPercent is the share of the size budget actually planned for.
	safetyMarginPercent = 80
)

// PlanChunkDuration returns the chunk duration for a size budget of
// maxChunkSize bytes, assuming 128 kbps audio (about 1 MB per minute) and
// keeping 20% headroom. The result is truncated to whole milliseconds.
//
// fileSize is accepted for callers that have it but does not influence the
// result: the duration depends only on the configured budget.
func PlanChunkDuration(fileSize, maxChunkSize int64) time.Duration {
	_ = fileSize
	if maxChunkSize <= 0 {
		return 0
	}
	// 0.8 * (M / 1MiB) * 60_000 ms == M * 48_000 / 1MiB ms
	ms := maxChunkSize * safetyMarginPercent * int64(time.Minute/time.Millisecond) / 100 / megabyte
	return time.Duration(ms) * time.Millisecond
}

// Window is a half-open time range [Start, End) of a recording.
type Window struct {
	Index int
	Start time.Duration
	End   time.Duration
}

// Duration returns the length of the window.
func (w Window) Duration() time.Duration {
	return w.End - w.Start
}

// String returns a human-readable representation for logging.
func (w Window) String() string {
	return fmt.Sprintf("chunk %d: %s-%s", w.Index+1, w.Start, w.End)
}

// Windows partitions [0, total) into consecutive windows of length chunk.
// All windows but the last are exactly chunk long; the last one holds the
// remainder. A recording shorter than chunk yields a single window, and an
// empty recording yields none.
func Windows(total, chunk time.Duration) ([]Window, error) {
	if chunk <= 0 {
		return nil, fmt.Errorf("audio: chunk duration must be positive, got %s", chunk)
	}
	if total <= 0 {
		return nil, nil
	}

	count := int((total + chunk - 1) / chunk)
	windows := make([]Window, 0, count)
	for i := 0; i < count; i++ {
		start := time.Duration(i) * chunk
		end := start + chunk
		if end > total {
			end = total
		}
		windows = append(windows, Window{Index: i, Start: start, End: end})
	}
	return windows, nil
}
