package domain

import "time"

type RolloverResult struct {
	RolledOver   bool
	WeeklySweep  bool
	DailySweep   bool
	RotatedTasks []string
}

// Rollover starts a new day when the stored date is not today. On Mondays
// the weekly policy is applied to every task before the reset. Calling it
// again on the same date is a no-op.
func (w *WeeklyData) Rollover(today string, weekday time.Weekday, isoWeek int) RolloverResult {
	if w.DailyState.Date == today {
		return RolloverResult{}
	}

	res := RolloverResult{RolledOver: true}

	if weekday == time.Monday {
		res.WeeklySweep = true
		for _, t := range w.Sequence {
			t.CompletedDays = 0
			if t.SubtaskRotation == RotationWeekly && RotateWeekly(t, isoWeek) {
				res.RotatedTasks = append(res.RotatedTasks, t.ID)
			}
		}
	}

	if w.DailyState.LastDailyRotation != today {
		for _, t := range w.Sequence {
			if t.SubtaskRotation == RotationDailyOrCompletion {
				RotateNext(t)
				res.DailySweep = true
				res.RotatedTasks = append(res.RotatedTasks, t.ID)
			}
		}
		w.DailyState.LastDailyRotation = today
	}

	w.ResetDay(today)

	return res
}
