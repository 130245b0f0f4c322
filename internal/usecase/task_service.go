package usecase

import (
	"context"
	"strings"
	"time"

	domainErrors "github.com/Manishsonibwr/saas-task-manager/internal/domain/errors"
	"github.com/Manishsonibwr/saas-task-manager/internal/domain/model"
	"github.com/Manishsonibwr/saas-task-manager/internal/domain/repository"
	"go.uber.org/zap"
)

var (
	validTaskStatuses   = map[string]bool{model.TaskStatusTodo: true, model.TaskStatusInProgress: true, model.TaskStatusDone: true}
	validTaskPriorities = map[string]bool{model.TaskPriorityLow: true, model.TaskPriorityMedium: true, model.TaskPriorityHigh: true}
)

// CreateTaskInput empty Status and Priority default to todo and medium
type CreateTaskInput struct {
	ProjectID   uint
	Title       string
	Description *string
	Status      string
	Priority    string
	DueDate     *time.Time
}

// UpdateTaskInput fields left nil are not changed
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *string
	Priority    *string
	DueDate     *time.Time
	Position    *int
	AssignedTo  *uint
}

// TaskService manages tasks inside projects of workspaces the user owns
type TaskService struct {
	tx            repository.Transactor
	workspaceRepo repository.WorkspaceRepository
	projectRepo   repository.ProjectRepository
	taskRepo      repository.TaskRepository
	quota         *QuotaEnforcer
	logger        *zap.Logger
}

// NewTaskService creates a new task service
func NewTaskService(
	tx repository.Transactor,
	workspaceRepo repository.WorkspaceRepository,
	projectRepo repository.ProjectRepository,
	taskRepo repository.TaskRepository,
	quota *QuotaEnforcer,
	logger *zap.Logger,
) *TaskService {
	return &TaskService{
		tx:            tx,
		workspaceRepo: workspaceRepo,
		projectRepo:   projectRepo,
		taskRepo:      taskRepo,
		quota:         quota,
		logger:        logger,
	}
}

// Create appends a task to the end of the project after the task quota check,
// holding the workspace lock until the insert commits.
func (s *TaskService) Create(ctx context.Context, userID uint, in CreateTaskInput) (*model.Task, error) {
	task, err := newTask(userID, in)
	if err != nil {
		return nil, err
	}

	var workspaceID uint
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		project, err := s.projectRepo.FindByID(ctx, in.ProjectID)
		if err != nil {
			return err
		}
		if project == nil {
			return domainErrors.NewNotFoundError(domainErrors.ResourceProject, in.ProjectID)
		}

		workspace, err := s.workspaceRepo.FindByIDForUpdate(ctx, project.WorkspaceID)
		if err != nil {
			return err
		}
		if workspace == nil || workspace.OwnerID != userID {
			return domainErrors.NewAccessDeniedError(domainErrors.ResourceProject, project.ID, userID)
		}

		workspaceID = workspace.ID
		if err := s.quota.CheckTaskLimit(ctx, workspace.ID); err != nil {
			return err
		}

		highest, err := s.taskRepo.MaxPosition(ctx, project.ID)
		if err != nil {
			return err
		}
		task.Position = 1
		if highest != nil {
			task.Position = *highest + 1
		}

		return s.taskRepo.Create(ctx, task)
	})
	if err != nil {
		s.quota.PublishExceeded(ctx, workspaceID, err)
		return nil, err
	}

	s.logger.Info("Task created",
		zap.Uint("task_id", task.ID),
		zap.Uint("project_id", task.ProjectID),
		zap.Int("position", task.Position))

	return task, nil
}

// ListByProject returns the project's tasks ordered by position
func (s *TaskService) ListByProject(ctx context.Context, userID, projectID uint) ([]model.Task, error) {
	if _, err := s.ownedProject(ctx, userID, projectID); err != nil {
		return nil, err
	}
	return s.taskRepo.ListByProject(ctx, projectID)
}

func (s *TaskService) Get(ctx context.Context, userID, id uint) (*model.Task, error) {
	return s.ownedTask(ctx, userID, id)
}

func (s *TaskService) Update(ctx context.Context, userID, id uint, in UpdateTaskInput) (*model.Task, error) {
	task, err := s.ownedTask(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, domainErrors.NewValidationError("title", "must not be empty")
		}
		task.Title = title
	}
	if in.Description != nil {
		task.Description = in.Description
	}
	if in.Status != nil {
		if !validTaskStatuses[*in.Status] {
			return nil, domainErrors.NewValidationError("status", "must be one of todo, in_progress, done")
		}
		task.Status = *in.Status
	}
	if in.Priority != nil {
		if !validTaskPriorities[*in.Priority] {
			return nil, domainErrors.NewValidationError("priority", "must be one of low, medium, high")
		}
		task.Priority = *in.Priority
	}
	if in.DueDate != nil {
		task.DueDate = in.DueDate
	}
	if in.Position != nil {
		task.Position = *in.Position
	}
	if in.AssignedTo != nil {
		task.AssignedTo = in.AssignedTo
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, userID, id uint) error {
	if _, err := s.ownedTask(ctx, userID, id); err != nil {
		return err
	}
	return s.taskRepo.Delete(ctx, id)
}

func newTask(userID uint, in CreateTaskInput) (*model.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, domainErrors.NewValidationError("title", "must not be empty")
	}

	status := in.Status
	if status == "" {
		status = model.TaskStatusTodo
	}
	if !validTaskStatuses[status] {
		return nil, domainErrors.NewValidationError("status", "must be one of todo, in_progress, done")
	}

	priority := in.Priority
	if priority == "" {
		priority = model.TaskPriorityMedium
	}
	if !validTaskPriorities[priority] {
		return nil, domainErrors.NewValidationError("priority", "must be one of low, medium, high")
	}

	return &model.Task{
		Title:       title,
		Description: in.Description,
		Status:      status,
		Priority:    priority,
		DueDate:     in.DueDate,
		ProjectID:   in.ProjectID,
		CreatedBy:   userID,
	}, nil
}

func (s *TaskService) ownedProject(ctx context.Context, userID, projectID uint) (*model.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domainErrors.NewNotFoundError(domainErrors.ResourceProject, projectID)
	}

	workspace, err := s.workspaceRepo.FindByID(ctx, project.WorkspaceID)
	if err != nil {
		return nil, err
	}
	if workspace == nil || workspace.OwnerID != userID {
		return nil, domainErrors.NewAccessDeniedError(domainErrors.ResourceProject, projectID, userID)
	}
	return project, nil
}

// ownedTask resolves ownership through task, project and workspace
func (s *TaskService) ownedTask(ctx context.Context, userID, id uint) (*model.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, domainErrors.NewNotFoundError(domainErrors.ResourceTask, id)
	}

	project, err := s.projectRepo.FindByID(ctx, task.ProjectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domainErrors.NewNotFoundError(domainErrors.ResourceProject, task.ProjectID)
	}

	workspace, err := s.workspaceRepo.FindByID(ctx, project.WorkspaceID)
	if err != nil {
		return nil, err
	}
	if workspace == nil || workspace.OwnerID != userID {
		return nil, domainErrors.NewAccessDeniedError(domainErrors.ResourceTask, id, userID)
	}
	return task, nil
}
