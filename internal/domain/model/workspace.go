package model

import "time"

type Workspace struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null;size:255" json:"name"`
	OwnerID   uint      `gorm:"not null;index" json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (Workspace) TableName() string {
	return "workspaces"
}

type Project struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null;size:255" json:"name"`
	Description *string   `gorm:"type:text" json:"description"`
	WorkspaceID uint      `gorm:"not null;index" json:"workspace_id"`
	CreatedBy   uint      `gorm:"not null" json:"created_by"`
	Archived    bool      `gorm:"not null;default:false" json:"archived"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Project) TableName() string {
	return "projects"
}

// Task status and priority defaults.
const (
	TaskStatusTodo       = "todo"
	TaskStatusInProgress = "in_progress"
	TaskStatusDone       = "done"

	TaskPriorityLow    = "low"
	TaskPriorityMedium = "medium"
	TaskPriorityHigh   = "high"
)

type Task struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"not null;size:255" json:"title"`
	Description *string    `gorm:"type:text" json:"description"`
	Status      string     `gorm:"not null;size:20;default:'todo'" json:"status"`
	Priority    string     `gorm:"not null;size:20;default:'medium'" json:"priority"`
	Position    int        `gorm:"not null;default:0" json:"position"`
	DueDate     *time.Time `json:"due_date"`
	ProjectID   uint       `gorm:"not null;index" json:"project_id"`
	CreatedBy   uint       `gorm:"not null" json:"created_by"`
	AssignedTo  *uint      `json:"assigned_to"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Task) TableName() string {
	return "tasks"
}
