package database

import (
	"github.com/Manishsonibwr/saas-task-manager/internal/adapter/repository"
	domainRepo "github.com/Manishsonibwr/saas-task-manager/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Repositories holds all repository instances
type Repositories struct {
	Tx           domainRepo.Transactor
	Plan         domainRepo.PlanRepository
	Subscription domainRepo.SubscriptionRepository
	Payment      domainRepo.PaymentRepository
	Workspace    domainRepo.WorkspaceRepository
	Project      domainRepo.ProjectRepository
	Task         domainRepo.TaskRepository
}

// NewRepositories creates new repository instances with database connection
func NewRepositories(db *gorm.DB, logger *zap.Logger) *Repositories {
	return &Repositories{
		Tx:           repository.NewTransactor(db, logger),
		Plan:         repository.NewPlanRepository(db, logger),
		Subscription: repository.NewSubscriptionRepository(db, logger),
		Payment:      repository.NewPaymentRepository(db, logger),
		Workspace:    repository.NewWorkspaceRepository(db, logger),
		Project:      repository.NewProjectRepository(db, logger),
		Task:         repository.NewTaskRepository(db, logger),
	}
}
