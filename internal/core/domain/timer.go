package domain

// TimerState is the stopwatch shown for the task in focus. The client's
// interval is authoritative for elapsed time; the server only stores the
// snapshots it receives and never derives elapsed time from wall clock deltas.
type TimerState string

const (
	TimerRunning TimerState = "running"
	TimerPaused  TimerState = "paused"
	TimerStopped TimerState = "stopped"
)

func (s TimerState) IsValid() bool {
	switch s {
	case TimerRunning, TimerPaused, TimerStopped:
		return true
	}
	return false
}

func (d *DayState) StartTimer() error {
	if d.TimerState == TimerRunning || d.TimerState == TimerPaused {
		return ErrTimerAlreadyRunning
	}
	d.TimerElapsedSeconds = 0
	d.TimerState = TimerRunning
	return nil
}

func (d *DayState) PauseTimer() error {
	if d.TimerState != TimerRunning {
		return ErrTimerNotRunning
	}
	d.TimerState = TimerPaused
	return nil
}

func (d *DayState) ResumeTimer() error {
	if d.TimerState != TimerPaused {
		return ErrTimerNotPaused
	}
	d.TimerState = TimerRunning
	return nil
}

// StopTimer stops the stopwatch. reset also zeroes the elapsed counter for
// the next task.
func (d *DayState) StopTimer(reset bool) {
	d.TimerState = TimerStopped
	if reset {
		d.TimerElapsedSeconds = 0
	}
}

// Tick overwrites the elapsed counter with the client's value while running.
func (d *DayState) Tick(elapsedSeconds int) error {
	if elapsedSeconds < 0 {
		return ErrInvalidElapsed
	}
	if d.TimerState != TimerRunning {
		return ErrTimerNotRunning
	}
	d.TimerElapsedSeconds = elapsedSeconds
	return nil
}

// ApplyTimerSnapshot reconciles a full (elapsed, state) snapshot sent by the
// client, walking the state machine instead of overwriting it.
func (d *DayState) ApplyTimerSnapshot(elapsedSeconds int, state TimerState) error {
	if elapsedSeconds < 0 {
		return ErrInvalidElapsed
	}
	if !state.IsValid() {
		return ErrInvalidTimerState
	}

	current := d.TimerState
	if current == "" {
		current = TimerStopped
	}

	switch state {
	case TimerRunning:
		switch current {
		case TimerStopped:
			if err := d.StartTimer(); err != nil {
				return err
			}
		case TimerPaused:
			if err := d.ResumeTimer(); err != nil {
				return err
			}
		}
		return d.Tick(elapsedSeconds)

	case TimerPaused:
		switch current {
		case TimerRunning:
			if err := d.Tick(elapsedSeconds); err != nil {
				return err
			}
			return d.PauseTimer()
		case TimerPaused:
			d.TimerElapsedSeconds = elapsedSeconds
			return nil
		default:
			return ErrTimerNotRunning
		}

	default:
		d.StopTimer(false)
		d.TimerElapsedSeconds = elapsedSeconds
		return nil
	}
}
