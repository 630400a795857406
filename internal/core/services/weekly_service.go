package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/comitanigiacomo/kanso-weekly-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-weekly-engine/internal/observability"
)

// RandomSource picks an index in [0, n).
type RandomSource interface {
	IntN(n int) int
}

type globalRandom struct{}

func (globalRandom) IntN(n int) int { return rand.IntN(n) }

// WeeklyTaskService walks the daily task sequence. Every public operation is
// one read-modify-write of the whole aggregate, serialized by mu. Failed
// operations never save, so the stored state is left as it was.
type WeeklyTaskService struct {
	repo    domain.WeeklyRepository
	history *HistoryService
	pool    domain.TaskPool
	clock   domain.Clock
	random  RandomSource

	mu sync.Mutex
}

func NewWeeklyTaskService(repo domain.WeeklyRepository, history *HistoryService, pool domain.TaskPool, clock domain.Clock) *WeeklyTaskService {
	return &WeeklyTaskService{
		repo:    repo,
		history: history,
		pool:    pool,
		clock:   clock,
		random:  globalRandom{},
	}
}

// WithRandomSource replaces the source used by the random pick rule.
func (s *WeeklyTaskService) WithRandomSource(r RandomSource) *WeeklyTaskService {
	s.random = r
	return s
}

type CompletionResult struct {
	Data          *domain.WeeklyData    `json:"data"`
	TaskID        string                `json:"task_id"`
	TaskCompleted bool                  `json:"task_completed"`
	SelectedTask  *domain.GeneralTask   `json:"selected_task,omitempty"`
	HistoryItem   *domain.CompletedItem `json:"history_item,omitempty"`
	// HistoryError is set when the state was saved but the history append failed.
	HistoryError  string                `json:"history_error,omitempty"`
}

// loadOrSeed reads the aggregate, seeding the default sequence when no
// state has been stored yet.
func (s *WeeklyTaskService) loadOrSeed(ctx context.Context) (*domain.WeeklyData, error) {
	data, err := s.repo.Load(ctx)
	if !errors.Is(err, domain.ErrStateNotFound) {
		return data, err
	}

	today := s.clock.Today()
	data, err = domain.NewWeeklyData(DefaultSequence(), today)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, data); err != nil {
		return nil, err
	}

	observability.LoggerFromContext(ctx).Info("weekly state seeded", "date", today, "tasks", len(data.Sequence))
	return data, nil
}

// loadToday reads the aggregate and applies the day rollover if the stored
// date is stale.
func (s *WeeklyTaskService) loadToday(ctx context.Context) (*domain.WeeklyData, error) {
	data, err := s.loadOrSeed(ctx)
	if err != nil {
		return nil, err
	}

	today := s.clock.Today()
	res := data.Rollover(today, s.clock.Weekday(), s.clock.ISOWeek(s.clock.Now()))
	if !res.RolledOver {
		return data, nil
	}

	if err := s.repo.Save(ctx, data); err != nil {
		return nil, err
	}

	observability.LoggerFromContext(ctx).Info("day rollover",
		"date", today,
		"weekly_sweep", res.WeeklySweep,
		"daily_sweep", res.DailySweep,
		"rotated_tasks", res.RotatedTasks,
	)
	return data, nil
}

// mutate runs fn on today's aggregate and saves it when fn succeeds.
func (s *WeeklyTaskService) mutate(ctx context.Context, fn func(data *domain.WeeklyData, now time.Time) error) (*domain.WeeklyData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.loadToday(ctx)
	if err != nil {
		return nil, err
	}

	if err := fn(data, s.clock.Now()); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, data); err != nil {
		return nil, err
	}
	return data, nil
}

func (s *WeeklyTaskService) GetCurrentDayState(ctx context.Context) (*domain.WeeklyData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadToday(ctx)
}

func activeTask(data *domain.WeeklyData) (*domain.WeeklyTask, error) {
	if data.DailyState.DayCompleted {
		return nil, domain.ErrDayCompleted
	}
	task := data.CurrentTask()
	if task == nil {
		return nil, domain.ErrNoCurrentTask
	}
	return task, nil
}

func (s *WeeklyTaskService) StartTask(ctx context.Context) (*domain.WeeklyData, error) {
	return s.mutate(ctx, func(data *domain.WeeklyData, now time.Time) error {
		task, err := activeTask(data)
		if err != nil {
			return err
		}

		task.IsStarted = true
		task.CurrentSubtask()

		if task.Behavior == domain.BehaviorRandomPick && task.SubtaskRotation == domain.RotationOnStartOrCompletion {
			domain.RotateNext(task)
		}

		task.TimeTracking.StartSession(now)

		data.DailyState.TimerElapsedSeconds = 0
		data.DailyState.TimerState = domain.TimerRunning
		return nil
	})
}

func (s *WeeklyTaskService) CompleteTask(ctx context.Context) (*CompletionResult, error) {
	result := &CompletionResult{TaskCompleted: true}

	data, err := s.mutate(ctx, func(data *domain.WeeklyData, now time.Time) error {
		task, err := activeTask(data)
		if err != nil {
			return err
		}
		result.TaskID = task.ID

		switch task.Behavior {
		case domain.BehaviorNestedCourseTree:
			name := task.HistoryName()
			domain.RotateCourseTree(task)

			item, err := s.finishCourseTree(data, task, name, now)
			if err != nil {
				return err
			}
			result.HistoryItem = item
			return nil

		case domain.BehaviorRandomPick:
			if task.SubtaskRotation == domain.RotationOnStartOrCompletion {
				domain.RotateNext(task)
			}

			picked, err := s.pickPendingTask(ctx)
			if err != nil {
				return err
			}
			result.SelectedTask = picked

		default:
			elapsed := data.DailyState.TimerElapsedSeconds
			if task.HistoryType != "" && elapsed > 0 {
				item, err := domain.NewCompletedItem(task.HistoryType, task.HistoryName(), task.ID, int64(elapsed), now)
				if err != nil {
					return err
				}
				result.HistoryItem = item
			}
		}

		task.TimeTracking.StopSession(now)
		data.Advance(task)
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.Data = data
	if err := s.recordHistory(ctx, result.HistoryItem); err != nil {
		result.HistoryError = err.Error()
	}

	logger := observability.LoggerFromContext(ctx)
	logger.Info("task completed",
		"task_id", result.TaskID,
		"index", data.DailyState.CurrentTaskIndex,
		"day_completed", data.DailyState.DayCompleted,
	)
	if result.SelectedTask != nil {
		logger.Info("random task picked", "task_id", result.SelectedTask.ID, "category", result.SelectedTask.Category)
	}

	return result, nil
}

// finishCourseTree records and advances a nested course tree task. name is
// resolved by the caller before the tree moves so it names the work that
// was just done.
func (s *WeeklyTaskService) finishCourseTree(data *domain.WeeklyData, task *domain.WeeklyTask, name string, now time.Time) (*domain.CompletedItem, error) {
	item, err := domain.NewCompletedItem(domain.ItemCourse, name, task.ID, int64(data.DailyState.TimerElapsedSeconds), now)
	if err != nil {
		return nil, err
	}

	task.TimeTracking.StopSession(now)
	data.Advance(task)
	return item, nil
}

func (s *WeeklyTaskService) pickPendingTask(ctx context.Context) (*domain.GeneralTask, error) {
	if s.pool == nil {
		return nil, domain.ErrNoPendingTasks
	}

	pending, err := s.pool.ListIncomplete(ctx)
	if err != nil {
		return nil, fmt.Errorf("weekly service: listing pending tasks: %w", err)
	}
	if len(pending) == 0 {
		return nil, domain.ErrNoPendingTasks
	}

	return pending[s.random.IntN(len(pending))], nil
}

func (s *WeeklyTaskService) recordHistory(ctx context.Context, item *domain.CompletedItem) error {
	if item == nil || s.history == nil {
		return nil
	}
	if err := s.history.Add(ctx, item); err != nil {
		observability.LoggerFromContext(ctx).Warn("history append failed after state save",
			"item_id", item.ID,
			"type", item.Type,
			"error", err,
		)
		return err
	}
	return nil
}

// CompleteSubtask drives the subtask rotation of the current task without
// touching the task's started flag or the timer. For a course tree, wrapping
// back to the first subtask completes the whole task.
func (s *WeeklyTaskService) CompleteSubtask(ctx context.Context) (*CompletionResult, error) {
	result := &CompletionResult{}

	data, err := s.mutate(ctx, func(data *domain.WeeklyData, now time.Time) error {
		task, err := activeTask(data)
		if err != nil {
			return err
		}
		if len(task.Subtasks) == 0 {
			return domain.ErrSubtaskNotFound
		}
		result.TaskID = task.ID

		if task.Behavior == domain.BehaviorNestedCourseTree {
			name := task.HistoryName()
			rot := domain.RotateCourseTree(task)
			if !rot.ShouldCompleteTask {
				return nil
			}

			item, err := s.finishCourseTree(data, task, name, now)
			if err != nil {
				return err
			}
			result.HistoryItem = item
			result.TaskCompleted = true
			return nil
		}

		if task.SubtaskRotation.AdvancesOnSubtaskCompletion() {
			domain.RotateNext(task)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.Data = data
	if err := s.recordHistory(ctx, result.HistoryItem); err != nil {
		result.HistoryError = err.Error()
	}
	return result, nil
}

// ResetDay starts today over without running the rollover sweeps.
func (s *WeeklyTaskService) ResetDay(ctx context.Context) (*domain.WeeklyData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.loadOrSeed(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	for _, t := range data.Sequence {
		t.TimeTracking.StopSession(now)
	}
	data.ResetDay(s.clock.Today())

	if err := s.repo.Save(ctx, data); err != nil {
		return nil, err
	}

	observability.LoggerFromContext(ctx).Info("day reset", "date", data.DailyState.Date)
	return data, nil
}

// ResetCurrentTask un-starts the current task and zeroes the timer, keeping
// the position in the sequence.
func (s *WeeklyTaskService) ResetCurrentTask(ctx context.Context) (*domain.WeeklyData, error) {
	return s.mutate(ctx, func(data *domain.WeeklyData, now time.Time) error {
		task := data.CurrentTask()
		if task == nil {
			return domain.ErrNoCurrentTask
		}

		task.IsStarted = false
		task.TimeTracking.StopSession(now)
		data.DailyState.StopTimer(true)
		return nil
	})
}

func (s *WeeklyTaskService) UpdateTimer(ctx context.Context, elapsedSeconds int, state domain.TimerState) (*domain.WeeklyData, error) {
	if elapsedSeconds < 0 {
		return nil, domain.ErrInvalidElapsed
	}
	if !state.IsValid() {
		return nil, domain.ErrInvalidTimerState
	}

	return s.mutate(ctx, func(data *domain.WeeklyData, _ time.Time) error {
		return data.DailyState.ApplyTimerSnapshot(elapsedSeconds, state)
	})
}

// TickTimer stores a new elapsed value from the client while the timer runs.
func (s *WeeklyTaskService) TickTimer(ctx context.Context, elapsedSeconds int) (*domain.WeeklyData, error) {
	if elapsedSeconds < 0 {
		return nil, domain.ErrInvalidElapsed
	}

	return s.mutate(ctx, func(data *domain.WeeklyData, _ time.Time) error {
		return data.DailyState.Tick(elapsedSeconds)
	})
}

func (s *WeeklyTaskService) StartTimer(ctx context.Context) (*domain.WeeklyData, error) {
	return s.mutate(ctx, func(data *domain.WeeklyData, _ time.Time) error {
		return data.DailyState.StartTimer()
	})
}

func (s *WeeklyTaskService) PauseTimer(ctx context.Context) (*domain.WeeklyData, error) {
	return s.mutate(ctx, func(data *domain.WeeklyData, _ time.Time) error {
		return data.DailyState.PauseTimer()
	})
}

func (s *WeeklyTaskService) ResumeTimer(ctx context.Context) (*domain.WeeklyData, error) {
	return s.mutate(ctx, func(data *domain.WeeklyData, _ time.Time) error {
		return data.DailyState.ResumeTimer()
	})
}

func (s *WeeklyTaskService) StopTimer(ctx context.Context) (*domain.WeeklyData, error) {
	return s.mutate(ctx, func(data *domain.WeeklyData, _ time.Time) error {
		data.DailyState.StopTimer(false)
		return nil
	})
}

func (s *WeeklyTaskService) AddCourseToSubtask(ctx context.Context, parentID, name string) (*domain.Subtask, error) {
	var course *domain.Subtask

	_, err := s.mutate(ctx, func(data *domain.WeeklyData, _ time.Time) error {
		_, parent := data.FindSubtask(parentID)
		if parent == nil {
			return domain.ErrSubtaskNotFound
		}

		added, err := parent.AddCourse(name)
		if err != nil {
			return err
		}
		course = added
		return nil
	})
	if err != nil {
		return nil, err
	}
	return course, nil
}

// CompleteCourse removes a finished course from its pool and records it.
// The task timer is attributed only when the owning task is in focus.
func (s *WeeklyTaskService) CompleteCourse(ctx context.Context, parentID, courseID string) (*domain.CompletedItem, error) {
	var item *domain.CompletedItem

	_, err := s.mutate(ctx, func(data *domain.WeeklyData, now time.Time) error {
		task, parent := data.FindSubtask(parentID)
		if parent == nil {
			return domain.ErrSubtaskNotFound
		}

		course, err := parent.RemoveCourse(courseID, now)
		if err != nil {
			return err
		}

		var spent int64
		if current := data.CurrentTask(); current != nil && current.ID == task.ID {
			spent = int64(data.DailyState.TimerElapsedSeconds)
		}

		item, err = domain.NewCompletedItem(domain.ItemCourse, course.DisplayName(), task.ID, spent, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	_ = s.recordHistory(ctx, item)
	return item, nil
}

func (s *WeeklyTaskService) UpdateTaskNotes(ctx context.Context, taskID, notes string) (*domain.WeeklyTask, error) {
	var updated *domain.WeeklyTask

	_, err := s.mutate(ctx, func(data *domain.WeeklyData, _ time.Time) error {
		task := data.FindTask(taskID)
		if task == nil {
			return domain.ErrTaskNotFound
		}
		if err := task.UpdateNotes(notes); err != nil {
			return err
		}
		updated = task
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// UpdateSubtask and DeleteSubtask are reserved; editing the tree in place
// is not supported.
func (s *WeeklyTaskService) UpdateSubtask(ctx context.Context, taskID, subtaskID string) error {
	return domain.ErrNotImplemented
}

func (s *WeeklyTaskService) DeleteSubtask(ctx context.Context, taskID, subtaskID string) error {
	return domain.ErrNotImplemented
}

func (s *WeeklyTaskService) GetUnfinishedCourses(ctx context.Context) ([]domain.UnfinishedCourse, error) {
	data, err := s.GetCurrentDayState(ctx)
	if err != nil {
		return nil, err
	}

	courses := []domain.UnfinishedCourse{}
	for _, task := range data.Sequence {
		courses = collectCourses(task.ID, task.Subtasks, courses)
	}
	return courses, nil
}

func collectCourses(taskID string, list []*domain.Subtask, acc []domain.UnfinishedCourse) []domain.UnfinishedCourse {
	for _, node := range list {
		if node.IsPool() {
			for _, course := range node.Subtasks {
				if course.Completed {
					continue
				}
				acc = append(acc, domain.UnfinishedCourse{
					TaskID:     taskID,
					ParentID:   node.ID,
					ParentName: node.Name,
					CourseID:   course.ID,
					Name:       course.DisplayName(),
					Current:    course.ID == node.CurrentSubtaskID,
				})
			}
			continue
		}
		acc = collectCourses(taskID, node.Subtasks, acc)
	}
	return acc
}

func (s *WeeklyTaskService) GetRotationSummary(ctx context.Context) (*domain.RotationSummary, error) {
	data, err := s.GetCurrentDayState(ctx)
	if err != nil {
		return nil, err
	}

	weekday := s.clock.Weekday()
	done := make(map[string]bool, len(data.DailyState.CompletedTasks))
	for _, id := range data.DailyState.CompletedTasks {
		done[id] = true
	}

	summary := &domain.RotationSummary{
		Date:       data.DailyState.Date,
		ISOWeek:    s.clock.ISOWeek(s.clock.Now()),
		TotalTasks: len(data.Sequence),
		Completed:  len(data.DailyState.CompletedTasks),
		Tasks:      make([]domain.TaskSummary, 0, len(data.Sequence)),
	}

	for _, task := range data.Sequence {
		ts := domain.TaskSummary{
			TaskID:          task.ID,
			TaskName:        task.Name,
			Behavior:        task.Behavior,
			Rotation:        task.SubtaskRotation,
			SubtaskCount:    len(task.Subtasks),
			PlannedDays:     task.PlannedDays,
			CompletedDays:   task.CompletedDays,
			ScheduledToday:  task.ScheduledOn(weekday),
			DoneToday:       done[task.ID],
			TotalTimeMillis: task.TimeTracking.TotalTime,
		}

		if current := task.CurrentSubtask(); current != nil {
			ts.CurrentSubtask = current.Name
			ts.CurrentTitle = current.Title
			if course := current.CurrentChild(); course != nil {
				ts.CurrentCourse = course.DisplayName()
			}
		}

		summary.Tasks = append(summary.Tasks, ts)
	}

	return summary, nil
}

// ReplaceSequence imports a new task sequence and starts today over on it.
func (s *WeeklyTaskService) ReplaceSequence(ctx context.Context, tasks []*domain.WeeklyTask) (*domain.WeeklyData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := domain.NewWeeklyData(tasks, s.clock.Today())
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.Load(ctx)
	switch {
	case err == nil:
		data.Version = existing.Version
		data.DailyState.LastDailyRotation = existing.DailyState.LastDailyRotation
	case !errors.Is(err, domain.ErrStateNotFound):
		return nil, err
	}

	if err := s.repo.Save(ctx, data); err != nil {
		return nil, err
	}

	observability.LoggerFromContext(ctx).Info("task sequence replaced", "tasks", len(data.Sequence))
	return data, nil
}

// Seed stores the default sequence unless a state already exists or force is set.
func (s *WeeklyTaskService) Seed(ctx context.Context, force bool) (*domain.WeeklyData, error) {
	if !force {
		s.mu.Lock()
		existing, err := s.repo.Load(ctx)
		s.mu.Unlock()

		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, domain.ErrStateNotFound) {
			return nil, err
		}
	}
	return s.ReplaceSequence(ctx, DefaultSequence())
}
