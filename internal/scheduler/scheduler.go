// Package scheduler runs the periodic background jobs.
package scheduler

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Revalidator checks stored admin sessions against the backend and returns
// how many expired.
type Revalidator interface {
	RevalidateAll(ctx context.Context) int
}

// Scheduler wraps a cron instance.
type Scheduler struct {
	sched *cron.Cron
}

// New creates a stopped scheduler.
func New() *Scheduler {
	return &Scheduler{
		sched: cron.New(cron.WithParser(cronParser), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
	}
}

// AddRevalidation registers the session revalidation job. An empty spec
// leaves revalidation off.
func (s *Scheduler) AddRevalidation(spec string, sessions Revalidator, timeout time.Duration) error {
	if spec == "" {
		zap.S().Info("session revalidation disabled")
		return nil
	}

	_, err := s.sched.AddFunc(spec, func() {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		if expired := sessions.RevalidateAll(ctx); expired > 0 {
			zap.S().Infof("session revalidation expired %d session(s)", expired)
		}
	})
	if err != nil {
		return errors.Wrapf(err, "schedule revalidation %q", spec)
	}
	return nil
}

// Start runs the jobs in the background.
func (s *Scheduler) Start() {
	s.sched.Start()
}

// Stop stops the scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.sched.Stop().Done()
}
