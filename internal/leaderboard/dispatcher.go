package leaderboard

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Result is the outcome of one asynchronous submission
type Result struct {
	Submission Submission
	Receipt    *Receipt
	Err        error
}

// Dispatcher runs submissions in the background so the game never waits
// on the leaderboard.
type Dispatcher struct {
	submitter ScoreSubmitter
	logger    *zap.Logger
	timeout   time.Duration
	results   chan Result
	wg        sync.WaitGroup
}

// NewDispatcher creates a dispatcher. Each submission gets its own
// timeout; results are delivered on Results in completion order.
func NewDispatcher(submitter ScoreSubmitter, logger *zap.Logger, timeout time.Duration) *Dispatcher {
	return &Dispatcher{
		submitter: submitter,
		logger:    logger,
		timeout:   timeout,
		results:   make(chan Result, 8),
	}
}

// Submit starts a submission and returns immediately. The result is
// always delivered unless ctx is cancelled before anyone reads it.
func (d *Dispatcher) Submit(ctx context.Context, s Submission) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		subCtx, cancel := context.WithTimeout(ctx, d.timeout)
		defer cancel()

		receipt, err := d.submitter.Submit(subCtx, s)
		if err != nil {
			d.logger.Warn("score submission failed",
				zap.Int("score", s.Score),
				zap.String("username", s.Username),
				zap.Error(err),
			)
		} else {
			d.logger.Info("score submitted",
				zap.Int("score", s.Score),
				zap.String("transaction_id", receipt.TransactionID),
			)
		}

		select {
		case d.results <- Result{Submission: s, Receipt: receipt, Err: err}:
		case <-ctx.Done():
		}
	}()
}

// Results delivers finished submissions
func (d *Dispatcher) Results() <-chan Result {
	return d.results
}

// Wait blocks until all started submissions have finished
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
