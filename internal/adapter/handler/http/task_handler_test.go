package http_test

import (
	"net/http"
	"strings"
	"testing"

	handler "github.com/Manishsonibwr/saas-task-manager/internal/adapter/handler/http"
	domainErrors "github.com/Manishsonibwr/saas-task-manager/internal/domain/errors"
	"github.com/Manishsonibwr/saas-task-manager/internal/domain/model"
	"github.com/Manishsonibwr/saas-task-manager/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestTaskHandler_Create(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setup      func(uc *MockTaskUsecase)
		wantStatus int
		wantBody   string
	}{
		{
			name: "created with defaults",
			body: `{"project_id":4,"title":"Write docs"}`,
			setup: func(uc *MockTaskUsecase) {
				uc.On("Create", mock.Anything, uint(7), usecase.CreateTaskInput{ProjectID: 4, Title: "Write docs"}).
					Return(&model.Task{ID: 1, Title: "Write docs", ProjectID: 4, Status: "todo", Priority: "medium", Position: 1}, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "unknown status",
			body:       `{"project_id":4,"title":"Write docs","status":"blocked"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"status must be one of todo in_progress done"}`,
		},
		{
			name:       "title too long",
			body:       `{"project_id":4,"title":"` + strings.Repeat("a", 256) + `"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"title must be at most 255 characters"}`,
		},
		{
			name: "task limit reached",
			body: `{"project_id":4,"title":"One more"}`,
			setup: func(uc *MockTaskUsecase) {
				uc.On("Create", mock.Anything, uint(7), mock.Anything).
					Return(nil, domainErrors.NewLimitExceededError(domainErrors.ResourceTasks, "Free", 100, 100))
			},
			wantStatus: http.StatusForbidden,
			wantBody:   `{"error":"Task limit reached for plan 'Free' (max 100 tasks)."}`,
		},
		{
			name: "project missing",
			body: `{"project_id":4,"title":"Orphan"}`,
			setup: func(uc *MockTaskUsecase) {
				uc.On("Create", mock.Anything, uint(7), mock.Anything).
					Return(nil, domainErrors.NewNotFoundError(domainErrors.ResourceProject, 4))
			},
			wantStatus: http.StatusNotFound,
			wantBody:   `{"error":"Project not found"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(MockTaskUsecase)
			if tt.setup != nil {
				tt.setup(uc)
			}
			e := newTestEcho(testUser())
			e.POST("/tasks", handler.NewTaskHandler(uc, zap.NewNop()).Create)

			rec := doRequest(e, http.MethodPost, "/tasks", tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
			uc.AssertExpectations(t)
		})
	}
}

func TestTaskHandler_Update(t *testing.T) {
	status := "done"
	position := 3
	uc := new(MockTaskUsecase)
	uc.On("Update", mock.Anything, uint(7), uint(9), usecase.UpdateTaskInput{Status: &status, Position: &position}).
		Return(&model.Task{ID: 9, Status: "done", Position: 3}, nil)

	e := newTestEcho(testUser())
	e.PATCH("/tasks/:id", handler.NewTaskHandler(uc, zap.NewNop()).Update)

	rec := doRequest(e, http.MethodPatch, "/tasks/9", `{"status":"done","position":3}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	uc.AssertExpectations(t)
}

func TestTaskHandler_ListAndDelete(t *testing.T) {
	uc := new(MockTaskUsecase)
	uc.On("ListByProject", mock.Anything, uint(7), uint(4)).Return([]model.Task{{ID: 1}, {ID: 2}}, nil)
	uc.On("Delete", mock.Anything, uint(7), uint(2)).Return(nil)

	e := newTestEcho(testUser())
	h := handler.NewTaskHandler(uc, zap.NewNop())
	e.GET("/tasks/by-project/:project_id", h.ListByProject)
	e.DELETE("/tasks/:id", h.Delete)

	rec := doRequest(e, http.MethodGet, "/tasks/by-project/4", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(e, http.MethodDelete, "/tasks/2", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	uc.AssertExpectations(t)
}
