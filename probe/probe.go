// Package probe measures media without showing it, using a headless pipeline.
package probe

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vidplay/vidplay/backend"
	"github.com/vidplay/vidplay/log"
	"github.com/vidplay/vidplay/pipeline"
	"github.com/vidplay/vidplay/util"
)

// ErrTimeout is returned when the engine does not learn the duration in time.
var ErrTimeout = errors.New("probe timed out")

const pollEvery = 100 * time.Millisecond

// Result is what a probe learns about one URI.
type Result struct {
	URI        string    `json:"uri" jsonschema:"description=Media URI as passed to the engine."`
	DurationNs int64     `json:"duration_ns" jsonschema:"description=Media duration in nanoseconds."`
	Duration   string    `json:"duration" jsonschema:"description=Media duration as h:mm:ss or mm:ss."`
	ProbedAt   time.Time `json:"probed_at" jsonschema:"description=When the probe ran."`
}

func newResult(u string, d time.Duration) *Result {
	return &Result{
		URI:        u,
		DurationNs: int64(d),
		Duration:   util.FormatClock(d),
		ProbedAt:   time.Now(),
	}
}

// Run loads u paused on a fresh backend over engine and waits until the
// duration is known, the pipeline fails or timeout passes.
func Run(ctx context.Context, engine pipeline.Engine, u string, timeout time.Duration) (*Result, error) {
	b := backend.New(engine)
	if err := b.Init(); err != nil {
		return nil, err
	}
	defer func() {
		if err := b.Deinit(); err != nil {
			log.Warnf("probe deinit: %s", err)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := b.Play(ctx, u); err != nil {
		return nil, err
	}

	if err := b.Pause(); err != nil {
		log.Debugf("probe pause: %s", err)
	}

	ticker := time.NewTicker(pollEvery)
	defer ticker.Stop()

	for {
		if d, ok := b.Duration().Get(); ok {
			log.WithField("uri", u).Infof("probed duration %s", d)
			return newResult(u, d), nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %s", ErrTimeout, u)
		case msg := <-b.Messages():
			if b.Handle(msg) && msg.Kind == pipeline.MessageError {
				return nil, msg.Err
			}
		case <-ticker.C:
		}
	}
}
