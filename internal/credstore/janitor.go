// internal/credstore/janitor.go
package credstore

import (
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Janitor periodically drops an expired credential so long-lived processes
// do not keep presenting a dead token until the next Get.
type Janitor struct {
	scheduler gocron.Scheduler
}

// StartJanitor schedules a sweep of the store every interval and starts the
// scheduler immediately.
func StartJanitor(store *Store, interval time.Duration) (*Janitor, error) {
	sched, err := gocron.NewScheduler(
		gocron.WithGlobalJobOptions(
			gocron.WithEventListeners(
				gocron.AfterJobRunsWithPanic(func(jobID uuid.UUID, jobName string, recoverData any) {
					log.Error().
						Str("job_id", jobID.String()).
						Str("job_name", jobName).
						Interface("panic", recoverData).
						Msg("Credential sweep panicked")
				}),
			),
		),
	)
	if err != nil {
		return nil, err
	}

	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(store.sweep),
		gocron.WithName("credential_sweep"),
	)
	if err != nil {
		_ = sched.Shutdown()
		return nil, err
	}

	sched.Start()
	log.Info().Dur("interval", interval).Msg("Credential janitor started")
	return &Janitor{scheduler: sched}, nil
}

// Stop shuts the janitor down and waits for a running sweep to finish.
func (j *Janitor) Stop() error {
	if j == nil || j.scheduler == nil {
		return nil
	}
	return j.scheduler.Shutdown()
}

// sweep clears the slot when the stored token has a passed JWT expiry.
func (s *Store) sweep() {
	s.mu.RLock()
	token := s.token
	s.mu.RUnlock()

	if token == "" || !expired(token, time.Now()) {
		return
	}
	log.Info().Msg("Sweeping expired credential")
	s.Clear()
}
