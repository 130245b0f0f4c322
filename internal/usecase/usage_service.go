package usecase

import (
	"context"

	"github.com/Manishsonibwr/saas-task-manager/internal/domain/repository"
)

// UsageService reports plan usage for workspaces the caller owns
type UsageService struct {
	workspaceRepo repository.WorkspaceRepository
	quota         *QuotaEnforcer
}

func NewUsageService(workspaceRepo repository.WorkspaceRepository, quota *QuotaEnforcer) *UsageService {
	return &UsageService{
		workspaceRepo: workspaceRepo,
		quota:         quota,
	}
}

func (s *UsageService) Usage(ctx context.Context, userID, workspaceID uint) (*WorkspaceUsage, error) {
	if _, err := ownedWorkspace(ctx, s.workspaceRepo.FindByID, workspaceID, userID); err != nil {
		return nil, err
	}
	return s.quota.Usage(ctx, workspaceID)
}
