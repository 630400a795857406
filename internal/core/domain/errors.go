package domain

import "errors"

// Validation errors: the caller sent something malformed.
var (
	ErrInvalidElapsed        = errors.New("elapsed seconds must be a non-negative integer")
	ErrInvalidTimerState     = errors.New("invalid timer state (must be running, paused or stopped)")
	ErrCourseNameEmpty       = errors.New("course name cannot be empty")
	ErrNotesTooLong          = errors.New("notes are too long (max 2000 chars)")
	ErrInvalidRotation       = errors.New("invalid subtask rotation policy")
	ErrRotationWithoutItems  = errors.New("a rotating task needs at least one subtask")
	ErrTaskNameEmpty         = errors.New("task name cannot be empty")
	ErrDuplicateTaskID       = errors.New("duplicate task id in sequence")
	ErrEmptySequence         = errors.New("task sequence cannot be empty")
	ErrInvalidWeeklySchedule = errors.New("weekly schedule must have exactly 7 days")
	ErrInvalidBehavior       = errors.New("invalid task behavior (must be generic, random_pick or nested_course_tree)")
)

// State conflicts: the operation is not valid in the current state.
var (
	ErrDayCompleted        = errors.New("day already completed")
	ErrNoCurrentTask       = errors.New("no task at the current position of the sequence")
	ErrTimerAlreadyRunning = errors.New("timer is already running")
	ErrTimerNotRunning     = errors.New("timer is not running")
	ErrTimerNotPaused      = errors.New("timer is not paused")
	ErrStateConflict       = errors.New("weekly state was modified concurrently")
)

// Lookups.
var (
	ErrStateNotFound        = errors.New("weekly state not found")
	ErrTaskNotFound         = errors.New("weekly task not found")
	ErrSubtaskNotFound      = errors.New("subtask not found")
	ErrSubtaskNotContainer  = errors.New("subtask does not hold a course pool")
	ErrCourseNotFound       = errors.New("course not found")
	ErrGeneralTaskNotFound  = errors.New("general task not found")
	ErrHistoryItemDuplicate = errors.New("history item already recorded")
)

var (
	// ErrNoPendingTasks is returned when the random pick has no candidates.
	ErrNoPendingTasks = errors.New("no pending tasks available")

	// ErrNotImplemented backs the reserved subtask editing endpoints.
	ErrNotImplemented = errors.New("operation not implemented")
)
