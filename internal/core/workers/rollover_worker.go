package workers

import (
	"context"
	"log"

	"github.com/comitanigiacomo/kanso-weekly-engine/internal/core/domain"
)

// DayLoader is satisfied by the weekly service: reading today's state
// applies and persists any pending rollover.
type DayLoader interface {
	GetCurrentDayState(ctx context.Context) (*domain.WeeklyData, error)
}

type RolloverJob struct {
	Reason string
}

// RolloverWorker applies the day rollover in the background so the first
// request after midnight does not pay for it.
type RolloverWorker struct {
	loader DayLoader
	jobs   chan RolloverJob
	// processed is signalled after each job, if set.
	processed chan<- error
}

func NewRolloverWorker(loader DayLoader) *RolloverWorker {
	return &RolloverWorker{
		loader: loader,
		jobs:   make(chan RolloverJob, 8),
	}
}

func (w *RolloverWorker) Start(ctx context.Context) {
	go func() {
		log.Println("[ROLLOVER] Worker started in background...")
		for {
			select {
			case job := <-w.jobs:
				err := w.processJob(ctx, job)
				if w.processed != nil {
					w.processed <- err
				}
			case <-ctx.Done():
				log.Println("[ROLLOVER] Worker shutting down...")
				return
			}
		}
	}()
}

func (w *RolloverWorker) Enqueue(reason string) {
	select {
	case w.jobs <- RolloverJob{Reason: reason}:
	default:
		log.Printf("[ROLLOVER] Queue full, dropping job (%s)", reason)
	}
}

func (w *RolloverWorker) processJob(ctx context.Context, job RolloverJob) error {
	data, err := w.loader.GetCurrentDayState(ctx)
	if err != nil {
		log.Printf("[ROLLOVER] Failed (%s): %v", job.Reason, err)
		return err
	}

	log.Printf("[ROLLOVER] State is current (%s): date=%s tasks=%d", job.Reason, data.DailyState.Date, len(data.Sequence))
	return nil
}
