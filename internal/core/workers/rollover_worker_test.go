package workers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/comitanigiacomo/kanso-weekly-engine/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLoader struct {
	calls int
	err   error
}

func (s *stubLoader) GetCurrentDayState(ctx context.Context) (*domain.WeeklyData, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &domain.WeeklyData{DailyState: domain.NewDayState("2024-01-10")}, nil
}

func TestRolloverWorker(t *testing.T) {
	t.Run("Success: Enqueued jobs reach the loader", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		loader := &stubLoader{}
		done := make(chan error, 1)
		w := NewRolloverWorker(loader)
		w.processed = done
		w.Start(ctx)

		w.Enqueue("test")

		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Fatal("job was not processed")
		}
		assert.Equal(t, 1, loader.calls)
	})

	t.Run("Error: Loader failures are reported", func(t *testing.T) {
		boom := errors.New("store down")
		w := NewRolloverWorker(&stubLoader{err: boom})

		err := w.processJob(context.Background(), RolloverJob{Reason: "test"})
		assert.ErrorIs(t, err, boom)
	})

	t.Run("Edge: Full queue drops jobs without blocking", func(t *testing.T) {
		w := NewRolloverWorker(&stubLoader{})
		for i := 0; i < cap(w.jobs)+5; i++ {
			w.Enqueue("flood")
		}
		assert.Len(t, w.jobs, cap(w.jobs))
	})
}

func TestBuildDailySpec(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"00:00", "0 0 0 * * *", false},
		{"23:59", "0 59 23 * * *", false},
		{"7:05", "0 5 7 * * *", false},
		{"24:00", "", true},
		{"12:60", "", true},
		{"noon", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := buildDailySpec(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScheduler_ScheduleRollover(t *testing.T) {
	s := NewScheduler(time.UTC)
	w := NewRolloverWorker(&stubLoader{})

	id, err := s.ScheduleRollover("00:00", w)
	require.NoError(t, err)
	assert.NotZero(t, id)

	_, err = s.ScheduleRollover("25:00", w)
	assert.Error(t, err)

	s.Start()
	s.Stop()
}
