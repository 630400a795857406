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

func TestSubtask_AddCourse(t *testing.T) {
	t.Run("Success: First course becomes current", func(t *testing.T) {
		pool := &domain.Subtask{ID: "pool", Name: "Practicas", Kind: domain.SubtaskPool}

		course, err := pool.AddCourse("  Go avanzado  ")

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(course.ID, "course_"))
		assert.Equal(t, "Go avanzado", course.Name)
		assert.Equal(t, "Go avanzado", course.Title)
		assert.Equal(t, "Practicas", course.ParentName)
		assert.Equal(t, course.ID, pool.CurrentSubtaskID)

		second, err := pool.AddCourse("Rust")
		require.NoError(t, err)
		assert.Equal(t, 1, second.Order)
		assert.Equal(t, course.ID, pool.CurrentSubtaskID)
	})

	t.Run("Edge: Long names are truncated", func(t *testing.T) {
		pool := &domain.Subtask{ID: "pool", Kind: domain.SubtaskPool}

		course, err := pool.AddCourse(strings.Repeat("a", domain.MaxCourseNameLen+50))

		require.NoError(t, err)
		assert.Len(t, course.Name, domain.MaxCourseNameLen)
	})

	t.Run("Edge: Truncation keeps multi-byte characters whole", func(t *testing.T) {
		pool := &domain.Subtask{ID: "pool", Kind: domain.SubtaskPool}

		course, err := pool.AddCourse(strings.Repeat("a", domain.MaxCourseNameLen-1) + "ó")

		require.NoError(t, err)
		assert.True(t, utf8.ValidString(course.Name))
		assert.Equal(t, strings.Repeat("a", domain.MaxCourseNameLen-1), course.Name)
	})

	t.Run("Error: Blank name", func(t *testing.T) {
		pool := &domain.Subtask{ID: "pool", Kind: domain.SubtaskPool}
		_, err := pool.AddCourse("   ")
		assert.ErrorIs(t, err, domain.ErrCourseNameEmpty)
	})

	t.Run("Error: Not a pool", func(t *testing.T) {
		leaf := &domain.Subtask{ID: "leaf", Kind: domain.SubtaskRotating}
		_, err := leaf.AddCourse("Go")
		assert.ErrorIs(t, err, domain.ErrSubtaskNotContainer)
	})
}

func TestSubtask_RemoveCourse(t *testing.T) {
	now := time.Date(2024, 1, 10, 15, 0, 0, 0, time.UTC)

	newPool := func(t *testing.T) (*domain.Subtask, []*domain.Subtask) {
		pool := &domain.Subtask{ID: "pool", Name: "Related", Kind: domain.SubtaskPool}
		var courses []*domain.Subtask
		for _, name := range []string{"A", "B", "C"} {
			c, err := pool.AddCourse(name)
			require.NoError(t, err)
			courses = append(courses, c)
		}
		return pool, courses
	}

	t.Run("Success: Removing the current course moves to the next one", func(t *testing.T) {
		pool, courses := newPool(t)
		pool.CurrentSubtaskID = courses[1].ID
		courses[1].TimeTracking.StartSession(now.Add(-time.Minute))

		removed, err := pool.RemoveCourse(courses[1].ID, now)

		require.NoError(t, err)
		assert.True(t, removed.Completed)
		assert.False(t, removed.TimeTracking.IsActive)
		assert.Equal(t, int64(60000), removed.TimeTracking.TotalTime)
		assert.Len(t, pool.Subtasks, 2)
		assert.Equal(t, courses[2].ID, pool.CurrentSubtaskID)
	})

	t.Run("Success: Removing the last course wraps the pointer", func(t *testing.T) {
		pool, courses := newPool(t)
		pool.CurrentSubtaskID = courses[2].ID

		_, err := pool.RemoveCourse(courses[2].ID, now)

		require.NoError(t, err)
		assert.Equal(t, courses[0].ID, pool.CurrentSubtaskID)
	})

	t.Run("Success: Removing another course keeps the pointer", func(t *testing.T) {
		pool, courses := newPool(t)

		_, err := pool.RemoveCourse(courses[2].ID, now)

		require.NoError(t, err)
		assert.Equal(t, courses[0].ID, pool.CurrentSubtaskID)
	})

	t.Run("Edge: Emptying the pool clears the pointer", func(t *testing.T) {
		pool := &domain.Subtask{ID: "pool", Kind: domain.SubtaskPool}
		c, _ := pool.AddCourse("Only")

		_, err := pool.RemoveCourse(c.ID, now)

		require.NoError(t, err)
		assert.Empty(t, pool.Subtasks)
		assert.Empty(t, pool.CurrentSubtaskID)
		assert.Nil(t, pool.CurrentChild())
	})

	t.Run("Error: Unknown course", func(t *testing.T) {
		pool, _ := newPool(t)
		_, err := pool.RemoveCourse("course_missing", now)
		assert.ErrorIs(t, err, domain.ErrCourseNotFound)
	})
}

func TestSubtask_DisplayName(t *testing.T) {
	assert.Equal(t, "Dune", (&domain.Subtask{Name: "Kindle", Title: "Dune"}).DisplayName())
	assert.Equal(t, "Kindle", (&domain.Subtask{Name: "Kindle", Title: "  "}).DisplayName())
}
