package domain

type RotationSummary struct {
	Date       string        `json:"date"`
	ISOWeek    int           `json:"iso_week"`
	TotalTasks int           `json:"total_tasks"`
	Completed  int           `json:"completed_today"`
	Tasks      []TaskSummary `json:"tasks"`
}

type TaskSummary struct {
	TaskID          string         `json:"task_id"`
	TaskName        string         `json:"task_name"`
	Behavior        TaskBehavior   `json:"behavior"`
	Rotation        RotationPolicy `json:"rotation,omitempty"`
	SubtaskCount    int            `json:"subtask_count"`
	CurrentSubtask  string         `json:"current_subtask,omitempty"`
	CurrentTitle    string         `json:"current_title,omitempty"`
	CurrentCourse   string         `json:"current_course,omitempty"`
	PlannedDays     int            `json:"planned_days"`
	CompletedDays   int            `json:"completed_days"`
	ScheduledToday  bool           `json:"scheduled_today"`
	DoneToday       bool           `json:"done_today"`
	TotalTimeMillis int64          `json:"total_time_ms"`
}

// UnfinishedCourse is a course still pending in one of the pool subtasks.
type UnfinishedCourse struct {
	TaskID     string `json:"task_id"`
	ParentID   string `json:"parent_id"`
	ParentName string `json:"parent_name"`
	CourseID   string `json:"course_id"`
	Name       string `json:"name"`
	Current    bool   `json:"current"`
}
