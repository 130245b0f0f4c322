package usecase_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Manishsonibwr/saas-task-manager/internal/domain/model"
	"github.com/Manishsonibwr/saas-task-manager/internal/domain/repository"
)

// memStore is an in-memory implementation of every repository. Transactions
// are serialized by txMu, which stands in for the workspace row lock, and
// roll back to a snapshot on error.
type memStore struct {
	txMu sync.Mutex
	mu   sync.Mutex
	data memData
	// failures injects errors keyed by "<table>.<method>"
	failures map[string]error
}

type memData struct {
	nextID     uint
	plans      map[uint]model.Plan
	subs       map[uint]model.Subscription
	payments   map[uint]model.Payment
	workspaces map[uint]model.Workspace
	projects   map[uint]model.Project
	tasks      map[uint]model.Task
}

type memTxKey struct{}

func newMemStore() *memStore {
	return &memStore{
		data: memData{
			plans:      map[uint]model.Plan{},
			subs:       map[uint]model.Subscription{},
			payments:   map[uint]model.Payment{},
			workspaces: map[uint]model.Workspace{},
			projects:   map[uint]model.Project{},
			tasks:      map[uint]model.Task{},
		},
		failures: map[string]error{},
	}
}

func cloneMap[V any](m map[uint]V) map[uint]V {
	out := make(map[uint]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (d memData) clone() memData {
	return memData{
		nextID:     d.nextID,
		plans:      cloneMap(d.plans),
		subs:       cloneMap(d.subs),
		payments:   cloneMap(d.payments),
		workspaces: cloneMap(d.workspaces),
		projects:   cloneMap(d.projects),
		tasks:      cloneMap(d.tasks),
	}
}

func (s *memStore) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(memTxKey{}) != nil {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := s.data.clone()
	s.mu.Unlock()

	if err := fn(context.WithValue(ctx, memTxKey{}, true)); err != nil {
		s.mu.Lock()
		s.data = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *memStore) fail(key string) error {
	return s.failures[key]
}

func (s *memStore) id() uint {
	s.data.nextID++
	return s.data.nextID
}

func (s *memStore) Plans() repository.PlanRepository                 { return &memPlanRepo{s} }
func (s *memStore) Subscriptions() repository.SubscriptionRepository { return &memSubscriptionRepo{s} }
func (s *memStore) Payments() repository.PaymentRepository           { return &memPaymentRepo{s} }
func (s *memStore) Workspaces() repository.WorkspaceRepository       { return &memWorkspaceRepo{s} }
func (s *memStore) Projects() repository.ProjectRepository           { return &memProjectRepo{s} }
func (s *memStore) Tasks() repository.TaskRepository                 { return &memTaskRepo{s} }

// plans

type memPlanRepo struct{ s *memStore }

func (r *memPlanRepo) FindByID(ctx context.Context, id uint) (*model.Plan, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.data.plans[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r *memPlanRepo) FindByName(ctx context.Context, name string) (*model.Plan, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.findByName(name), nil
}

func (r *memPlanRepo) findByName(name string) *model.Plan {
	for _, p := range r.s.data.plans {
		if p.Name == name {
			p := p
			return &p
		}
	}
	return nil
}

func (r *memPlanRepo) ListActive(ctx context.Context) ([]model.Plan, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var plans []model.Plan
	for _, p := range r.s.data.plans {
		if p.IsActive {
			plans = append(plans, p)
		}
	}
	sort.Slice(plans, func(i, j int) bool { return plans[i].ID < plans[j].ID })
	return plans, nil
}

func (r *memPlanRepo) FindOrCreate(ctx context.Context, plan *model.Plan) (*model.Plan, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("plans.FindOrCreate"); err != nil {
		return nil, err
	}
	if existing := r.findByName(plan.Name); existing != nil {
		return existing, nil
	}
	created := *plan
	created.ID = r.s.id()
	created.CreatedAt = time.Now()
	r.s.data.plans[created.ID] = created
	return &created, nil
}

func (r *memPlanRepo) Upsert(ctx context.Context, plan *model.Plan) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if existing := r.findByName(plan.Name); existing != nil {
		plan.ID = existing.ID
		plan.CreatedAt = existing.CreatedAt
	} else {
		plan.ID = r.s.id()
		plan.CreatedAt = time.Now()
	}
	r.s.data.plans[plan.ID] = *plan
	return nil
}

func (r *memPlanRepo) Deactivate(ctx context.Context, name string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing := r.findByName(name)
	if existing == nil {
		return fmt.Errorf("plan %s not found", name)
	}
	existing.IsActive = false
	r.s.data.plans[existing.ID] = *existing
	return nil
}

// subscriptions

type memSubscriptionRepo struct{ s *memStore }

func (r *memSubscriptionRepo) withPlan(sub model.Subscription) *model.Subscription {
	if p, ok := r.s.data.plans[sub.PlanID]; ok {
		sub.Plan = &p
	}
	return &sub
}

func (r *memSubscriptionRepo) FindLatestByWorkspace(ctx context.Context, workspaceID uint) (*model.Subscription, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var latest *model.Subscription
	for _, sub := range r.s.data.subs {
		if sub.WorkspaceID == workspaceID && (latest == nil || sub.ID > latest.ID) {
			sub := sub
			latest = &sub
		}
	}
	if latest == nil {
		return nil, nil
	}
	return r.withPlan(*latest), nil
}

func (r *memSubscriptionRepo) FindActiveByWorkspace(ctx context.Context, workspaceID uint) (*model.Subscription, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var active []model.Subscription
	for _, sub := range r.s.data.subs {
		if sub.WorkspaceID == workspaceID && sub.Status == model.SubscriptionStatusActive {
			active = append(active, sub)
		}
	}
	if len(active) == 0 {
		return nil, nil
	}
	// current_period_end DESC NULLS FIRST, id DESC
	sort.Slice(active, func(i, j int) bool {
		a, b := active[i].CurrentPeriodEnd, active[j].CurrentPeriodEnd
		switch {
		case a == nil && b == nil:
			return active[i].ID > active[j].ID
		case a == nil:
			return true
		case b == nil:
			return false
		case !a.Equal(*b):
			return a.After(*b)
		default:
			return active[i].ID > active[j].ID
		}
	})
	return r.withPlan(active[0]), nil
}

func (r *memSubscriptionRepo) Create(ctx context.Context, sub *model.Subscription) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("subscriptions.Create"); err != nil {
		return err
	}
	sub.ID = r.s.id()
	sub.CreatedAt = time.Now()
	sub.UpdatedAt = sub.CreatedAt
	stored := *sub
	stored.Plan = nil
	r.s.data.subs[sub.ID] = stored
	return nil
}

func (r *memSubscriptionRepo) Update(ctx context.Context, sub *model.Subscription) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("subscriptions.Update"); err != nil {
		return err
	}
	sub.UpdatedAt = time.Now()
	stored := *sub
	stored.Plan = nil
	r.s.data.subs[sub.ID] = stored
	return nil
}

func (r *memSubscriptionRepo) ExpireOverdue(ctx context.Context, now time.Time) ([]model.Subscription, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var expired []model.Subscription
	for id, sub := range r.s.data.subs {
		if sub.Status == model.SubscriptionStatusActive && sub.CurrentPeriodEnd != nil && sub.CurrentPeriodEnd.Before(now) {
			sub.Status = model.SubscriptionStatusExpired
			r.s.data.subs[id] = sub
			expired = append(expired, sub)
		}
	}
	return expired, nil
}

// payments

type memPaymentRepo struct{ s *memStore }

func (r *memPaymentRepo) Create(ctx context.Context, payment *model.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.data.payments {
		if p.GatewayOrderID == payment.GatewayOrderID {
			return fmt.Errorf("duplicate gateway order id %s", payment.GatewayOrderID)
		}
	}
	payment.ID = r.s.id()
	payment.CreatedAt = time.Now()
	payment.UpdatedAt = payment.CreatedAt
	r.s.data.payments[payment.ID] = *payment
	return nil
}

func (r *memPaymentRepo) FindByOrderID(ctx context.Context, orderID string) (*model.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.data.payments {
		if p.GatewayOrderID == orderID {
			p := p
			return &p, nil
		}
	}
	return nil, nil
}

func (r *memPaymentRepo) Update(ctx context.Context, payment *model.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("payments.Update"); err != nil {
		return err
	}
	payment.UpdatedAt = time.Now()
	r.s.data.payments[payment.ID] = *payment
	return nil
}

func (r *memPaymentRepo) ListByWorkspace(ctx context.Context, workspaceID uint, limit int) ([]model.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var payments []model.Payment
	for _, p := range r.s.data.payments {
		if p.WorkspaceID == workspaceID {
			payments = append(payments, p)
		}
	}
	sort.Slice(payments, func(i, j int) bool { return payments[i].ID > payments[j].ID })
	if len(payments) > limit {
		payments = payments[:limit]
	}
	return payments, nil
}

// workspaces

type memWorkspaceRepo struct{ s *memStore }

func (r *memWorkspaceRepo) Create(ctx context.Context, workspace *model.Workspace) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	workspace.ID = r.s.id()
	workspace.CreatedAt = time.Now()
	r.s.data.workspaces[workspace.ID] = *workspace
	return nil
}

func (r *memWorkspaceRepo) FindByID(ctx context.Context, id uint) (*model.Workspace, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if w, ok := r.s.data.workspaces[id]; ok {
		return &w, nil
	}
	return nil, nil
}

func (r *memWorkspaceRepo) FindByIDForUpdate(ctx context.Context, id uint) (*model.Workspace, error) {
	if ctx.Value(memTxKey{}) == nil {
		return nil, fmt.Errorf("FindByIDForUpdate called outside a transaction")
	}
	return r.FindByID(ctx, id)
}

func (r *memWorkspaceRepo) ListByOwner(ctx context.Context, ownerID uint) ([]model.Workspace, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var workspaces []model.Workspace
	for _, w := range r.s.data.workspaces {
		if w.OwnerID == ownerID {
			workspaces = append(workspaces, w)
		}
	}
	sort.Slice(workspaces, func(i, j int) bool { return workspaces[i].ID > workspaces[j].ID })
	return workspaces, nil
}

func (r *memWorkspaceRepo) Update(ctx context.Context, workspace *model.Workspace) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.data.workspaces[workspace.ID] = *workspace
	return nil
}

func (r *memWorkspaceRepo) Delete(ctx context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for pid, p := range r.s.data.projects {
		if p.WorkspaceID != id {
			continue
		}
		for tid, t := range r.s.data.tasks {
			if t.ProjectID == pid {
				delete(r.s.data.tasks, tid)
			}
		}
		delete(r.s.data.projects, pid)
	}
	delete(r.s.data.workspaces, id)
	return nil
}

// projects

type memProjectRepo struct{ s *memStore }

func (r *memProjectRepo) Create(ctx context.Context, project *model.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	project.ID = r.s.id()
	project.CreatedAt = time.Now()
	r.s.data.projects[project.ID] = *project
	return nil
}

func (r *memProjectRepo) FindByID(ctx context.Context, id uint) (*model.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.data.projects[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r *memProjectRepo) ListByWorkspace(ctx context.Context, workspaceID uint) ([]model.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var projects []model.Project
	for _, p := range r.s.data.projects {
		if p.WorkspaceID == workspaceID {
			projects = append(projects, p)
		}
	}
	sort.Slice(projects, func(i, j int) bool { return projects[i].ID > projects[j].ID })
	return projects, nil
}

func (r *memProjectRepo) Update(ctx context.Context, project *model.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.data.projects[project.ID] = *project
	return nil
}

func (r *memProjectRepo) Delete(ctx context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for tid, t := range r.s.data.tasks {
		if t.ProjectID == id {
			delete(r.s.data.tasks, tid)
		}
	}
	delete(r.s.data.projects, id)
	return nil
}

func (r *memProjectRepo) CountByWorkspace(ctx context.Context, workspaceID uint) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, p := range r.s.data.projects {
		if p.WorkspaceID == workspaceID {
			n++
		}
	}
	return n, nil
}

// tasks

type memTaskRepo struct{ s *memStore }

func (r *memTaskRepo) Create(ctx context.Context, task *model.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	task.ID = r.s.id()
	task.CreatedAt = time.Now()
	task.UpdatedAt = task.CreatedAt
	r.s.data.tasks[task.ID] = *task
	return nil
}

func (r *memTaskRepo) FindByID(ctx context.Context, id uint) (*model.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if t, ok := r.s.data.tasks[id]; ok {
		return &t, nil
	}
	return nil, nil
}

func (r *memTaskRepo) ListByProject(ctx context.Context, projectID uint) ([]model.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var tasks []model.Task
	for _, t := range r.s.data.tasks {
		if t.ProjectID == projectID {
			tasks = append(tasks, t)
		}
	}
	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].Position != tasks[j].Position {
			return tasks[i].Position < tasks[j].Position
		}
		return tasks[i].ID < tasks[j].ID
	})
	return tasks, nil
}

func (r *memTaskRepo) Update(ctx context.Context, task *model.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	task.UpdatedAt = time.Now()
	r.s.data.tasks[task.ID] = *task
	return nil
}

func (r *memTaskRepo) Delete(ctx context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.data.tasks, id)
	return nil
}

func (r *memTaskRepo) CountByWorkspace(ctx context.Context, workspaceID uint) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, t := range r.s.data.tasks {
		if p, ok := r.s.data.projects[t.ProjectID]; ok && p.WorkspaceID == workspaceID {
			n++
		}
	}
	return n, nil
}

func (r *memTaskRepo) MaxPosition(ctx context.Context, projectID uint) (*int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var highest *int
	for _, t := range r.s.data.tasks {
		if t.ProjectID == projectID && (highest == nil || t.Position > *highest) {
			pos := t.Position
			highest = &pos
		}
	}
	return highest, nil
}
