package domain

// DayState tracks today's walk through the task sequence.
type DayState struct {
	Date                string              `json:"date"`
	CurrentTaskIndex    int                 `json:"currentTaskIndex"`
	CompletedTasks      []string            `json:"completedTasks"`
	DayCompleted        bool                `json:"dayCompleted"`
	SubtaskQueues       map[string][]string `json:"subtaskQueues"`
	TimerElapsedSeconds int                 `json:"timerElapsedSeconds"`
	TimerState          TimerState          `json:"timerState"`
	LastDailyRotation   string              `json:"lastDailyRotation,omitempty"`
}

// NewDayState returns the zero state for the given civil date.
func NewDayState(date string) DayState {
	return DayState{
		Date:           date,
		CompletedTasks: []string{},
		SubtaskQueues:  map[string][]string{},
		TimerState:     TimerStopped,
	}
}

func (d DayState) clone() DayState {
	c := d
	c.CompletedTasks = append([]string{}, d.CompletedTasks...)
	c.SubtaskQueues = make(map[string][]string, len(d.SubtaskQueues))
	for k, v := range d.SubtaskQueues {
		c.SubtaskQueues[k] = append([]string(nil), v...)
	}
	return c
}
