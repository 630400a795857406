package domain

// RotationPolicy decides when a task's current subtask moves on.
type RotationPolicy string

const (
	// RotationWeekly pins the subtask to the ISO week number.
	RotationWeekly RotationPolicy = "weekly"
	// RotationCompletion advances only on an explicit subtask completion.
	RotationCompletion RotationPolicy = "completion"
	// RotationOnStartOrCompletion advances when the task starts and when it completes.
	RotationOnStartOrCompletion RotationPolicy = "onStartOrCompletion"
	// RotationDailyOrCompletion advances once per day and on explicit subtask completion.
	RotationDailyOrCompletion RotationPolicy = "dailyOrCompletion"
)

func (p RotationPolicy) IsValid() bool {
	switch p {
	case RotationWeekly, RotationCompletion, RotationOnStartOrCompletion, RotationDailyOrCompletion:
		return true
	}
	return false
}

// AdvancesOnSubtaskCompletion reports whether an explicit subtask completion
// moves the pointer for this policy.
func (p RotationPolicy) AdvancesOnSubtaskCompletion() bool {
	return p == RotationCompletion || p == RotationDailyOrCompletion
}

// WeeklyIndex maps an ISO week number onto a list of n items.
func WeeklyIndex(isoWeek, n int) int {
	if n <= 0 {
		return 0
	}
	i := (isoWeek - 1) % n
	if i < 0 {
		i += n
	}
	return i
}

// RotateWeekly points the task at subtasks[(isoWeek-1) mod n]. It reports
// whether the pointer changed.
func RotateWeekly(t *WeeklyTask, isoWeek int) bool {
	if len(t.Subtasks) == 0 {
		return false
	}

	target := t.Subtasks[WeeklyIndex(isoWeek, len(t.Subtasks))]
	if t.CurrentSubtaskID == target.ID {
		return false
	}

	t.CurrentSubtaskID = target.ID
	return true
}

// RotateNext advances the task's pointer round-robin and reports whether it
// wrapped from the last subtask back to the first.
func RotateNext(t *WeeklyTask) bool {
	n := len(t.Subtasks)
	if n == 0 {
		return false
	}

	i := indexOf(t.Subtasks, t.CurrentSubtaskID)
	if i < 0 {
		// Dangling pointer: adopt the first subtask instead of skipping it.
		t.CurrentSubtaskID = t.Subtasks[0].ID
		return false
	}

	next := (i + 1) % n
	t.CurrentSubtaskID = t.Subtasks[next].ID
	return next == 0
}

type CourseTreeRotation struct {
	From               *Subtask
	To                 *Subtask
	ShouldCompleteTask bool
}

// RotateCourseTree moves a nested course tree to its next sibling. Wrapping
// from the last sibling to the first closes the cycle, which the caller
// treats as completion of the whole task.
func RotateCourseTree(t *WeeklyTask) CourseTreeRotation {
	from := t.CurrentSubtask()
	if from == nil {
		return CourseTreeRotation{}
	}

	wrapped := RotateNext(t)

	return CourseTreeRotation{
		From:               from,
		To:                 t.CurrentSubtask(),
		ShouldCompleteTask: wrapped,
	}
}
