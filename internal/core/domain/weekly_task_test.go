package domain_test

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/comitanigiacomo/kanso-weekly-engine/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWeeklyTask(t *testing.T) {
	t.Run("Success: Defaults", func(t *testing.T) {
		task, err := domain.NewWeeklyTask("  Meditar ", 3)

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(task.ID, "weekly_"))
		assert.Equal(t, "Meditar", task.Name)
		assert.Equal(t, 3, task.Order)
		assert.Equal(t, domain.DaysPerWeek, task.PlannedDays)
		assert.Len(t, task.WeeklySchedule, domain.DaysPerWeek)
		assert.Equal(t, domain.BehaviorGeneric, task.Behavior)
	})

	t.Run("Edge: Long names are cut on a rune boundary", func(t *testing.T) {
		task, err := domain.NewWeeklyTask(strings.Repeat("a", domain.MaxTaskNameLen-1)+"ñandú", 0)

		require.NoError(t, err)
		assert.True(t, utf8.ValidString(task.Name))
		assert.Equal(t, strings.Repeat("a", domain.MaxTaskNameLen-1), task.Name)
	})

	t.Run("Error: Empty name", func(t *testing.T) {
		_, err := domain.NewWeeklyTask(" ", 0)
		assert.ErrorIs(t, err, domain.ErrTaskNameEmpty)
	})
}

func TestWeeklyTask_Normalize(t *testing.T) {
	t.Run("Success: Behavior and history type are inferred for legacy imports", func(t *testing.T) {
		mac := &domain.WeeklyTask{
			ID:   domain.MacTaskID,
			Name: domain.TaskNameMac,
			Subtasks: []*domain.Subtask{
				{ID: "sub_mac_laptop", Name: "Laptop"},
				{ID: domain.SubtaskMacPracticas, Name: "Practicas"},
			},
		}
		lista := &domain.WeeklyTask{ID: "weekly_lista", Name: domain.TaskNameLista}
		leer := &domain.WeeklyTask{ID: "weekly_leer", Name: domain.TaskNameLeer}

		require.NoError(t, mac.Normalize())
		require.NoError(t, lista.Normalize())
		require.NoError(t, leer.Normalize())

		assert.Equal(t, domain.BehaviorNestedCourseTree, mac.Behavior)
		assert.Equal(t, domain.ItemCourse, mac.HistoryType)
		assert.Equal(t, domain.SubtaskRotating, mac.Subtasks[0].Kind)
		assert.Equal(t, domain.SubtaskPool, mac.Subtasks[1].Kind)
		assert.Equal(t, domain.TaskNameMac, mac.Subtasks[1].ParentName)
		assert.Equal(t, "sub_mac_laptop", mac.CurrentSubtaskID)

		assert.Equal(t, domain.BehaviorRandomPick, lista.Behavior)
		assert.Equal(t, domain.ItemBook, leer.HistoryType)
	})

	t.Run("Success: Explicit behavior is kept", func(t *testing.T) {
		task := &domain.WeeklyTask{ID: "weekly_lista", Name: domain.TaskNameLista, Behavior: domain.BehaviorGeneric}
		require.NoError(t, task.Normalize())
		assert.Equal(t, domain.BehaviorGeneric, task.Behavior)
	})

	t.Run("Success: Dangling pointer heals", func(t *testing.T) {
		task := rotatingTask(domain.RotationWeekly, "a", "b")
		task.CurrentSubtaskID = "deleted"

		require.NoError(t, task.Normalize())
		assert.Equal(t, "a", task.CurrentSubtaskID)
	})

	t.Run("Error: Rotation without subtasks", func(t *testing.T) {
		task := &domain.WeeklyTask{ID: "x", Name: "x", SubtaskRotation: domain.RotationWeekly}
		assert.ErrorIs(t, task.Normalize(), domain.ErrRotationWithoutItems)
	})

	t.Run("Error: Unknown rotation", func(t *testing.T) {
		task := rotatingTask("monthly", "a")
		assert.ErrorIs(t, task.Normalize(), domain.ErrInvalidRotation)
	})

	t.Run("Error: Schedule with the wrong length", func(t *testing.T) {
		task := &domain.WeeklyTask{ID: "x", Name: "x", WeeklySchedule: []bool{true}}
		assert.ErrorIs(t, task.Normalize(), domain.ErrInvalidWeeklySchedule)
	})

	t.Run("Error: Unknown behavior", func(t *testing.T) {
		task := &domain.WeeklyTask{ID: "x", Name: "x", Behavior: "bogus"}
		assert.ErrorIs(t, task.Normalize(), domain.ErrInvalidBehavior)
	})

	t.Run("Error: Unknown history type", func(t *testing.T) {
		task := &domain.WeeklyTask{ID: "x", Name: "x", HistoryType: "Movie"}
		assert.ErrorIs(t, task.Normalize(), domain.ErrInvalidHistoryType)
	})
}

func TestWeeklyTask_HistoryName(t *testing.T) {
	t.Run("Success: Plain task uses its name", func(t *testing.T) {
		task := &domain.WeeklyTask{Name: "Ejercicio"}
		assert.Equal(t, "Ejercicio", task.HistoryName())
	})

	t.Run("Success: Subtask title wins over its label", func(t *testing.T) {
		task := &domain.WeeklyTask{
			Name:     domain.TaskNameLeer,
			Subtasks: []*domain.Subtask{{ID: "k", Name: "Kindle", Title: "Dune"}},
		}
		assert.Equal(t, "Dune", task.HistoryName())
	})

	t.Run("Success: Course tree names the active course", func(t *testing.T) {
		pool := &domain.Subtask{ID: domain.SubtaskMacPracticas, Name: "Practicas", Kind: domain.SubtaskPool}
		_, err := pool.AddCourse("Kubernetes")
		require.NoError(t, err)

		task := &domain.WeeklyTask{
			Name:     domain.TaskNameMac,
			Behavior: domain.BehaviorNestedCourseTree,
			Subtasks: []*domain.Subtask{pool},
		}
		assert.Equal(t, "Kubernetes", task.HistoryName())
	})

	t.Run("Edge: Empty pool falls back to the task name", func(t *testing.T) {
		task := &domain.WeeklyTask{
			Name:     domain.TaskNameMac,
			Behavior: domain.BehaviorNestedCourseTree,
			Subtasks: []*domain.Subtask{{ID: "p", Name: "Practicas", Kind: domain.SubtaskPool}},
		}
		assert.Equal(t, domain.TaskNameMac, task.HistoryName())
	})
}

func TestWeeklyTask_UpdateNotes(t *testing.T) {
	task := &domain.WeeklyTask{Name: "x"}

	require.NoError(t, task.UpdateNotes("capitulo 3"))
	assert.Equal(t, "capitulo 3", task.Notes)

	err := task.UpdateNotes(strings.Repeat("n", domain.MaxNotesLen+1))
	assert.ErrorIs(t, err, domain.ErrNotesTooLong)
	assert.Equal(t, "capitulo 3", task.Notes)
}

func TestWeeklyTask_ScheduledOn(t *testing.T) {
	task := &domain.WeeklyTask{WeeklySchedule: []bool{true, true, true, true, true, false, false}}

	assert.True(t, task.ScheduledOn(time.Monday))
	assert.True(t, task.ScheduledOn(time.Friday))
	assert.False(t, task.ScheduledOn(time.Saturday))
	assert.False(t, task.ScheduledOn(time.Sunday))
}

func TestWeeklyTask_Clone(t *testing.T) {
	task := rotatingTask(domain.RotationWeekly, "a", "b")
	task.WeeklySchedule = []bool{true, true, true, true, true, true, true}

	c := task.Clone()
	c.Subtasks[0].Name = "changed"
	c.WeeklySchedule[0] = false

	assert.Equal(t, "a", task.Subtasks[0].Name)
	assert.True(t, task.WeeklySchedule[0])
}
