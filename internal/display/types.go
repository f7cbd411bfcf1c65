package display

import (
	"time"

	"github.com/autobrr/pwdigest/internal/pwhash"
	"github.com/autobrr/pwdigest/internal/types"
)

// Displayer reports progress and status messages
type Displayer interface {
	ShowProgress(total int)
	UpdateProgress(completed int, rate float64)
	FinishProgress()
	IsQuiet() bool
	SetQuiet(quiet bool)
	ShowMessage(msg string)
	ShowWarning(msg string)
}

// DigestDisplayer defines an interface for displaying digest results
type DigestDisplayer interface {
	ShowDigest(label string, size int, digest string)
	ShowCheckResult(match bool)
	ShowTrace(tr *pwhash.Trace, digest string)
	ShowBatchResults(results []types.Result, duration time.Duration)
}
