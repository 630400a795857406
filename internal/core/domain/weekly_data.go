package domain

import "sort"

// WeeklyData is the aggregate root: the ordered task sequence and today's
// progress through it. It is always loaded and saved as a whole.
type WeeklyData struct {
	Sequence   []*WeeklyTask `json:"sequence"`
	DailyState DayState      `json:"dailyState"`
	// Version is maintained by stores that support optimistic locking.
	Version int `json:"version,omitempty"`
}

// NewWeeklyData validates a sequence and starts a fresh day on it.
func NewWeeklyData(tasks []*WeeklyTask, today string) (*WeeklyData, error) {
	w := &WeeklyData{
		Sequence:   tasks,
		DailyState: NewDayState(today),
	}
	if err := w.Normalize(); err != nil {
		return nil, err
	}
	return w, nil
}

// Normalize validates every task, rejects duplicate ids and orders the
// sequence by Order.
func (w *WeeklyData) Normalize() error {
	if len(w.Sequence) == 0 {
		return ErrEmptySequence
	}

	seen := make(map[string]bool, len(w.Sequence))
	for _, t := range w.Sequence {
		if err := t.Normalize(); err != nil {
			return err
		}
		if seen[t.ID] {
			return ErrDuplicateTaskID
		}
		seen[t.ID] = true
	}

	sort.SliceStable(w.Sequence, func(i, j int) bool {
		return w.Sequence[i].Order < w.Sequence[j].Order
	})

	if w.DailyState.CompletedTasks == nil {
		w.DailyState.CompletedTasks = []string{}
	}
	if w.DailyState.SubtaskQueues == nil {
		w.DailyState.SubtaskQueues = map[string][]string{}
	}
	if w.DailyState.TimerState == "" {
		w.DailyState.TimerState = TimerStopped
	}

	return nil
}

// CurrentTask returns the task at the day's pointer, or nil once the
// sequence is exhausted.
func (w *WeeklyData) CurrentTask() *WeeklyTask {
	i := w.DailyState.CurrentTaskIndex
	if i < 0 || i >= len(w.Sequence) {
		return nil
	}
	return w.Sequence[i]
}

func (w *WeeklyData) FindTask(id string) *WeeklyTask {
	for _, t := range w.Sequence {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// FindSubtask searches every task's tree and returns the owning task too.
func (w *WeeklyData) FindSubtask(id string) (*WeeklyTask, *Subtask) {
	for _, t := range w.Sequence {
		if s := t.FindSubtask(id); s != nil {
			return t, s
		}
	}
	return nil, nil
}

// ResetDay clears every started flag and starts today from scratch.
func (w *WeeklyData) ResetDay(today string) {
	for _, t := range w.Sequence {
		t.IsStarted = false
	}

	lastDaily := w.DailyState.LastDailyRotation
	w.DailyState = NewDayState(today)
	w.DailyState.LastDailyRotation = lastDaily
}

// Advance is the generic advance shared by every task: log the task,
// move the pointer and stop the timer. The next task is never auto-started.
func (w *WeeklyData) Advance(task *WeeklyTask) {
	d := &w.DailyState

	task.CompletedDays++
	d.CompletedTasks = append(d.CompletedTasks, task.ID)
	d.CurrentTaskIndex++

	if d.CurrentTaskIndex >= len(w.Sequence) {
		d.DayCompleted = true
		d.StopTimer(false)
		return
	}

	d.StopTimer(true)
}

func (w *WeeklyData) Clone() *WeeklyData {
	if w == nil {
		return nil
	}
	c := &WeeklyData{
		Sequence:   make([]*WeeklyTask, len(w.Sequence)),
		DailyState: w.DailyState.clone(),
		Version:    w.Version,
	}
	for i, t := range w.Sequence {
		c.Sequence[i] = t.Clone()
	}
	return c
}
