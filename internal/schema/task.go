package schema

// TaskStatuses holds the allowed values of the task status field.
var TaskStatuses = []string{"todo", "in_progress", "done"}

// TaskPriorities holds the allowed values of the task priority field.
var TaskPriorities = []string{"low", "medium", "high"}

const (
	TaskStatusTodo       = "todo"
	TaskStatusInProgress = "in_progress"
	TaskStatusDone       = "done"

	TaskPriorityLow    = "low"
	TaskPriorityMedium = "medium"
	TaskPriorityHigh   = "high"
)

type Task struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	DueDate     string `json:"dueDate"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`

	// soft reference to a member; a dangling id is tolerated and
	// rendered as "Unassigned" by the callers
	MemberID int `json:"memberId"`
}

func (t Task) EntityID() int {
	return t.ID
}
