package pipeline

import (
	"time"

	"github.com/hashicorp/go-hclog"
)

// Checkpoint is a named point in a run, measured from its start.
type Checkpoint struct {
	Label   string        `json:"label"`
	Elapsed time.Duration `json:"elapsed"`
}

type timer struct {
	start       time.Time
	checkpoints []Checkpoint
	logger      hclog.Logger
}

func newTimer(logger hclog.Logger) *timer {
	return &timer{start: time.Now(), logger: logger}
}

func (t *timer) mark(label string) {
	elapsed := time.Since(t.start)
	var step time.Duration
	if n := len(t.checkpoints); n > 0 {
		step = elapsed - t.checkpoints[n-1].Elapsed
	} else {
		step = elapsed
	}
	t.checkpoints = append(t.checkpoints, Checkpoint{Label: label, Elapsed: elapsed})
	t.logger.Debug("⏱️ Checkpoint", "step", label, "elapsed", elapsed, "delta", step)
}

func (t *timer) total() time.Duration {
	return time.Since(t.start)
}
