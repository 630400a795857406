package domain

import (
	"time"

	"github.com/google/uuid"
)

type TimeSession struct {
	ID        string     `json:"id"`
	StartTime time.Time  `json:"startTime"`
	EndTime   *time.Time `json:"endTime,omitempty"`
	// Duration is in milliseconds, 0 while the session is open.
	Duration int64 `json:"duration"`
}

// TimeTracking accumulates work sessions for a task or subtask.
// TotalTime is the sum of closed session durations in milliseconds.
type TimeTracking struct {
	IsActive  bool          `json:"isActive"`
	StartTime *time.Time    `json:"startTime,omitempty"`
	EndTime   *time.Time    `json:"endTime,omitempty"`
	TotalTime int64         `json:"totalTime"`
	Sessions  []TimeSession `json:"sessions"`
}

// StartSession opens a new session. Calling it while a session is open is a no-op.
func (t *TimeTracking) StartSession(now time.Time) {
	if t.IsActive {
		return
	}

	start := now.UTC()
	t.IsActive = true
	t.StartTime = &start
	t.EndTime = nil
	t.Sessions = append(t.Sessions, TimeSession{
		ID:        uuid.NewString(),
		StartTime: start,
	})
}

// StopSession closes the open session and returns its duration in milliseconds.
func (t *TimeTracking) StopSession(now time.Time) int64 {
	if !t.IsActive {
		return 0
	}

	end := now.UTC()
	var duration int64

	if n := len(t.Sessions); n > 0 && t.Sessions[n-1].EndTime == nil {
		last := &t.Sessions[n-1]
		duration = end.Sub(last.StartTime).Milliseconds()
		if duration < 0 {
			duration = 0
		}
		last.EndTime = &end
		last.Duration = duration
	}

	t.TotalTime += duration
	t.IsActive = false
	t.StartTime = nil
	t.EndTime = &end

	return duration
}

func (t TimeTracking) clone() TimeTracking {
	c := t
	if t.StartTime != nil {
		s := *t.StartTime
		c.StartTime = &s
	}
	if t.EndTime != nil {
		e := *t.EndTime
		c.EndTime = &e
	}
	if t.Sessions != nil {
		c.Sessions = make([]TimeSession, len(t.Sessions))
		for i, s := range t.Sessions {
			if s.EndTime != nil {
				e := *s.EndTime
				s.EndTime = &e
			}
			c.Sessions[i] = s
		}
	}
	return c
}
