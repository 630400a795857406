package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// TaskBehavior selects the completion rules of a task. It is attached when
// the task is created or imported, never derived at call time.
type TaskBehavior string

const (
	BehaviorGeneric TaskBehavior = "generic"
	// BehaviorRandomPick completes by drawing a pending task from the general pool.
	BehaviorRandomPick TaskBehavior = "random_pick"
	// BehaviorNestedCourseTree rotates a two-level tree of study subjects and courses.
	BehaviorNestedCourseTree TaskBehavior = "nested_course_tree"
)

func (b TaskBehavior) IsValid() bool {
	switch b {
	case BehaviorGeneric, BehaviorRandomPick, BehaviorNestedCourseTree:
		return true
	}
	return false
}

// Reserved identities of the routine as it was first seeded. Imports that do
// not carry a behavior are tagged from these.
const (
	MacTaskID     = "weekly_mac"
	TaskNameMac   = "Mac"
	TaskNameLista = "Lista"
	TaskNameLeer  = "Leer"
	TaskNameJuego = "Juego"

	SubtaskMacPracticas = "sub_mac_practicas"
	SubtaskMacRelated   = "sub_mac_related"
)

const (
	MaxTaskNameLen = 100
	MaxNotesLen    = 2000
	DaysPerWeek    = 7
)

type WeeklyTask struct {
	ID               string         `json:"id"`
	Name             string         `json:"name"`
	PlannedDays      int            `json:"plannedDays"`
	CompletedDays    int            `json:"completedDays"`
	WeeklySchedule   []bool         `json:"weeklySchedule"`
	Order            int            `json:"order"`
	IsStarted        bool           `json:"isStarted"`
	Notes            string         `json:"notes"`
	Behavior         TaskBehavior   `json:"behavior"`
	HistoryType      ItemType       `json:"historyType,omitempty"`
	SubtaskRotation  RotationPolicy `json:"subtaskRotation,omitempty"`
	CurrentSubtaskID string         `json:"currentSubtaskId,omitempty"`
	Subtasks         []*Subtask     `json:"subtasks,omitempty"`
	TimeTracking     TimeTracking   `json:"timeTracking"`
}

// NewWeeklyTask builds a task scheduled every day of the week.
func NewWeeklyTask(name string, order int) (*WeeklyTask, error) {
	clean := strings.TrimSpace(name)
	if clean == "" {
		return nil, ErrTaskNameEmpty
	}
	clean = truncate(clean, MaxTaskNameLen)

	schedule := make([]bool, DaysPerWeek)
	for i := range schedule {
		schedule[i] = true
	}

	return &WeeklyTask{
		ID:             "weekly_" + uuid.NewString(),
		Name:           clean,
		PlannedDays:    DaysPerWeek,
		WeeklySchedule: schedule,
		Order:          order,
		Behavior:       BehaviorGeneric,
	}, nil
}

// Normalize validates the task and repairs derived fields: missing behavior
// tags, dangling subtask pointers and denormalized parent names.
func (t *WeeklyTask) Normalize() error {
	t.Name = strings.TrimSpace(t.Name)
	if t.Name == "" {
		return ErrTaskNameEmpty
	}
	if t.ID == "" {
		t.ID = "weekly_" + uuid.NewString()
	}

	if t.WeeklySchedule == nil {
		t.WeeklySchedule = make([]bool, DaysPerWeek)
		for i := range t.WeeklySchedule {
			t.WeeklySchedule[i] = true
		}
	}
	if len(t.WeeklySchedule) != DaysPerWeek {
		return ErrInvalidWeeklySchedule
	}

	if len(t.Notes) > MaxNotesLen {
		return ErrNotesTooLong
	}

	if t.Behavior == "" {
		t.Behavior = inferBehavior(t.ID, t.Name)
	}
	if !t.Behavior.IsValid() {
		return ErrInvalidBehavior
	}
	if t.HistoryType == "" {
		t.HistoryType = inferHistoryType(t.Name)
	}
	if t.HistoryType != "" && !t.HistoryType.IsValid() {
		return ErrInvalidHistoryType
	}

	if t.SubtaskRotation != "" {
		if !t.SubtaskRotation.IsValid() {
			return ErrInvalidRotation
		}
		if len(t.Subtasks) == 0 {
			return ErrRotationWithoutItems
		}
	}

	normalizeChildren(t.Name, t.Subtasks)
	if len(t.Subtasks) > 0 {
		t.CurrentSubtask()
	}

	return nil
}

func normalizeChildren(parentName string, list []*Subtask) {
	for _, s := range list {
		s.ParentName = parentName
		if s.Kind == "" {
			s.Kind = SubtaskRotating
			if s.ID == SubtaskMacPracticas || s.ID == SubtaskMacRelated {
				s.Kind = SubtaskPool
			}
		}
		normalizeChildren(s.Name, s.Subtasks)
		if len(s.Subtasks) > 0 {
			s.CurrentChild()
		}
	}
}

// truncate cuts s to at most limit bytes without splitting a rune.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func inferBehavior(id, name string) TaskBehavior {
	switch {
	case id == MacTaskID:
		return BehaviorNestedCourseTree
	case name == TaskNameLista:
		return BehaviorRandomPick
	default:
		return BehaviorGeneric
	}
}

func inferHistoryType(name string) ItemType {
	switch name {
	case TaskNameLeer:
		return ItemBook
	case TaskNameJuego:
		return ItemGame
	case TaskNameMac:
		return ItemCourse
	default:
		return ""
	}
}

// CurrentSubtask returns the active first-level subtask. A missing or
// dangling pointer adopts the first subtask.
func (t *WeeklyTask) CurrentSubtask() *Subtask {
	if len(t.Subtasks) == 0 {
		return nil
	}
	if i := indexOf(t.Subtasks, t.CurrentSubtaskID); i >= 0 {
		return t.Subtasks[i]
	}
	t.CurrentSubtaskID = t.Subtasks[0].ID
	return t.Subtasks[0]
}

func (t *WeeklyTask) FindSubtask(id string) *Subtask {
	return findInTree(t.Subtasks, id)
}

// ActiveCourse walks into the active subtask when it owns children of its
// own and returns the active leaf there.
func (t *WeeklyTask) ActiveCourse() *Subtask {
	current := t.CurrentSubtask()
	if current == nil {
		return nil
	}
	return current.CurrentChild()
}

// HistoryName resolves the most specific title of the work just finished.
func (t *WeeklyTask) HistoryName() string {
	current := t.CurrentSubtask()
	if current == nil {
		return t.Name
	}

	if t.Behavior == BehaviorNestedCourseTree {
		if course := current.CurrentChild(); course != nil {
			return course.DisplayName()
		}
		if current.IsPool() {
			return t.Name
		}
	}

	return current.DisplayName()
}

func (t *WeeklyTask) UpdateNotes(notes string) error {
	if len(notes) > MaxNotesLen {
		return ErrNotesTooLong
	}
	t.Notes = notes
	return nil
}

// ScheduledOn reports whether the task is eligible on the given weekday.
// The schedule is indexed Monday first.
func (t *WeeklyTask) ScheduledOn(day time.Weekday) bool {
	if len(t.WeeklySchedule) != DaysPerWeek {
		return true
	}
	return t.WeeklySchedule[(int(day)+6)%7]
}

func (t *WeeklyTask) Clone() *WeeklyTask {
	if t == nil {
		return nil
	}
	c := *t
	if t.WeeklySchedule != nil {
		c.WeeklySchedule = append([]bool(nil), t.WeeklySchedule...)
	}
	c.Subtasks = cloneSubtasks(t.Subtasks)
	c.TimeTracking = t.TimeTracking.clone()
	return &c
}
