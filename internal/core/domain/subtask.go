package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// SubtaskKind tags how a node's own children behave.
type SubtaskKind string

const (
	// SubtaskRotating children take turns through CurrentSubtaskID.
	SubtaskRotating SubtaskKind = "rotating"
	// SubtaskPool children are a finite course list; completing one removes it.
	SubtaskPool SubtaskKind = "pool"
)

const MaxCourseNameLen = 200

// Subtask is a node of a task's subtask tree. Name is the category or device
// label ("Kindle"), Title the specific work item currently attached to it.
type Subtask struct {
	ID               string         `json:"id"`
	Name             string         `json:"name"`
	Title            string         `json:"title,omitempty"`
	Completed        bool           `json:"completed"`
	Order            int            `json:"order"`
	MovedToEnd       bool           `json:"movedToEnd,omitempty"`
	Kind             SubtaskKind    `json:"kind,omitempty"`
	TimeTracking     TimeTracking   `json:"timeTracking"`
	Subtasks         []*Subtask     `json:"subtasks,omitempty"`
	CurrentSubtaskID string         `json:"currentSubtaskId,omitempty"`
	SubtaskRotation  RotationPolicy `json:"subtaskRotation,omitempty"`
	ParentName       string         `json:"parentName,omitempty"`
}

// DisplayName prefers the specific title over the category label.
func (s *Subtask) DisplayName() string {
	if strings.TrimSpace(s.Title) != "" {
		return s.Title
	}
	return s.Name
}

func (s *Subtask) IsPool() bool {
	return s.Kind == SubtaskPool
}

// CurrentChild returns the active child, adopting the first one when the
// pointer is missing or dangling.
func (s *Subtask) CurrentChild() *Subtask {
	if len(s.Subtasks) == 0 {
		return nil
	}
	if i := indexOf(s.Subtasks, s.CurrentSubtaskID); i >= 0 {
		return s.Subtasks[i]
	}
	s.CurrentSubtaskID = s.Subtasks[0].ID
	return s.Subtasks[0]
}

// AddCourse appends a new course to a pool node.
func (s *Subtask) AddCourse(name string) (*Subtask, error) {
	if !s.IsPool() {
		return nil, ErrSubtaskNotContainer
	}

	clean := strings.TrimSpace(name)
	if clean == "" {
		return nil, ErrCourseNameEmpty
	}
	clean = truncate(clean, MaxCourseNameLen)

	course := &Subtask{
		ID:         "course_" + uuid.NewString(),
		Name:       clean,
		Title:      clean,
		Order:      nextOrder(s.Subtasks),
		ParentName: s.Name,
	}
	s.Subtasks = append(s.Subtasks, course)
	if s.CurrentSubtaskID == "" {
		s.CurrentSubtaskID = course.ID
	}

	return course, nil
}

// RemoveCourse deletes a finished course from a pool node and returns it.
func (s *Subtask) RemoveCourse(courseID string, now time.Time) (*Subtask, error) {
	if !s.IsPool() {
		return nil, ErrSubtaskNotContainer
	}

	i := indexOf(s.Subtasks, courseID)
	if i < 0 {
		return nil, ErrCourseNotFound
	}

	course := s.Subtasks[i]
	course.TimeTracking.StopSession(now)
	course.Completed = true

	s.Subtasks = append(s.Subtasks[:i:i], s.Subtasks[i+1:]...)

	if s.CurrentSubtaskID == courseID {
		s.CurrentSubtaskID = ""
		if len(s.Subtasks) > 0 {
			s.CurrentSubtaskID = s.Subtasks[i%len(s.Subtasks)].ID
		}
	}

	return course, nil
}

func (s *Subtask) clone() *Subtask {
	if s == nil {
		return nil
	}
	c := *s
	c.TimeTracking = s.TimeTracking.clone()
	c.Subtasks = cloneSubtasks(s.Subtasks)
	return &c
}

func cloneSubtasks(list []*Subtask) []*Subtask {
	if list == nil {
		return nil
	}
	out := make([]*Subtask, len(list))
	for i, s := range list {
		out[i] = s.clone()
	}
	return out
}

func indexOf(list []*Subtask, id string) int {
	if id == "" {
		return -1
	}
	for i, s := range list {
		if s.ID == id {
			return i
		}
	}
	return -1
}

func nextOrder(list []*Subtask) int {
	highest := -1
	for _, s := range list {
		if s.Order > highest {
			highest = s.Order
		}
	}
	return highest + 1
}

// findInTree searches the node list and every nested level.
func findInTree(list []*Subtask, id string) *Subtask {
	for _, s := range list {
		if s.ID == id {
			return s
		}
		if found := findInTree(s.Subtasks, id); found != nil {
			return found
		}
	}
	return nil
}
