package task

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aftermeet-app/aftermeet/internal/domain/entities"
	"github.com/aftermeet-app/aftermeet/internal/domain/repositories"
	"github.com/aftermeet-app/aftermeet/internal/usecase/auth"
	usecaseerrors "github.com/aftermeet-app/aftermeet/internal/usecase/errors"
)

type fakeTaskRepo struct {
	tasks map[uuid.UUID]*entities.Task
	order []uuid.UUID
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[uuid.UUID]*entities.Task)}
}

func (f *fakeTaskRepo) Create(_ context.Context, t *entities.Task) error {
	cp := *t
	f.tasks[t.ID] = &cp
	f.order = append(f.order, t.ID)
	return nil
}

func (f *fakeTaskRepo) GetByID(_ context.Context, id uuid.UUID) (*entities.Task, error) {
	t, ok := f.tasks[id]
	if !ok {
		return nil, usecaseerrors.ErrTaskNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTaskRepo) ListByUser(_ context.Context, userID uuid.UUID, filters repositories.TaskFilters) ([]entities.Task, error) {
	var out []entities.Task
	for _, id := range f.order {
		t := f.tasks[id]
		if t.AssignedTo != userID && t.CreatedBy != userID {
			continue
		}
		if filters.Status != "" && t.Status != filters.Status {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

func (f *fakeTaskRepo) Update(_ context.Context, t *entities.Task) error {
	if _, ok := f.tasks[t.ID]; !ok {
		return usecaseerrors.ErrTaskNotFound
	}
	cp := *t
	f.tasks[t.ID] = &cp
	return nil
}

func (f *fakeTaskRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.tasks, id)
	return nil
}

func newTaskFixture() (*Service, *fakeTaskRepo, *auth.Session) {
	repo := newFakeTaskRepo()
	sess := &auth.Session{UserID: uuid.New(), Email: "owner@example.com"}
	return NewService(repo, zap.NewNop()), repo, sess
}

func strPtr(s string) *string { return &s }

func TestCreateSelfAssigns(t *testing.T) {
	svc, _, sess := newTaskFixture()
	ctx := context.Background()

	task, err := svc.Create(ctx, sess, "Write release notes", "", "", nil, nil, nil)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if task.AssignedTo != sess.UserID || task.CreatedBy != sess.UserID {
		t.Errorf("task = %+v, want self-assigned", task)
	}
	if task.Status != entities.TaskStatusPending || task.Priority != entities.UrgencyMedium {
		t.Errorf("defaults = %s/%s", task.Status, task.Priority)
	}
}

func TestUpdateStatusByAssignee(t *testing.T) {
	svc, _, sess := newTaskFixture()
	ctx := context.Background()

	task, _ := svc.Create(ctx, sess, "Ship it", "", entities.UrgencyHigh, nil, nil, nil)

	updated, err := svc.Update(ctx, sess, task.ID, UpdateInput{Status: strPtr(entities.TaskStatusInProgress)})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Status != entities.TaskStatusInProgress {
		t.Errorf("Status = %q, want in_progress", updated.Status)
	}
}

func TestUpdateRejectsUnknownStatus(t *testing.T) {
	svc, _, sess := newTaskFixture()
	ctx := context.Background()

	task, _ := svc.Create(ctx, sess, "Ship it", "", "", nil, nil, nil)
	if _, err := svc.Update(ctx, sess, task.ID, UpdateInput{Status: strPtr("archived")}); !errors.Is(err, usecaseerrors.ErrInvalidTaskStatus) {
		t.Errorf("error = %v, want ErrInvalidTaskStatus", err)
	}
}

func TestOnlyAssigneeMayMutate(t *testing.T) {
	svc, _, creator := newTaskFixture()
	ctx := context.Background()
	assignee := uuid.New()

	task, err := svc.Create(ctx, creator, "Review PR", "", "", &assignee, nil, nil)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// The creator delegated the task and may no longer mutate it.
	if _, err := svc.Update(ctx, creator, task.ID, UpdateInput{Status: strPtr(entities.TaskStatusDone)}); !errors.Is(err, usecaseerrors.ErrNotTaskAssignee) {
		t.Errorf("creator mutate error = %v, want ErrNotTaskAssignee", err)
	}

	assigneeSess := &auth.Session{UserID: assignee}
	if _, err := svc.Update(ctx, assigneeSess, task.ID, UpdateInput{Status: strPtr(entities.TaskStatusDone)}); err != nil {
		t.Errorf("assignee mutate error = %v", err)
	}

	// Both creator and assignee may read; strangers may not.
	if _, err := svc.Get(ctx, creator, task.ID); err != nil {
		t.Errorf("creator read error = %v", err)
	}
	stranger := &auth.Session{UserID: uuid.New()}
	if _, err := svc.Get(ctx, stranger, task.ID); !errors.Is(err, usecaseerrors.ErrNotTaskAssignee) {
		t.Errorf("stranger read error = %v, want ErrNotTaskAssignee", err)
	}

	// Deletion follows the read rule, not the mutate rule.
	if err := svc.Delete(ctx, stranger, task.ID); !errors.Is(err, usecaseerrors.ErrNotTaskAssignee) {
		t.Errorf("stranger delete error = %v, want ErrNotTaskAssignee", err)
	}
	if err := svc.Delete(ctx, creator, task.ID); err != nil {
		t.Errorf("creator delete error = %v", err)
	}
}

func TestListRanksByPriority(t *testing.T) {
	svc, _, sess := newTaskFixture()
	ctx := context.Background()

	if _, err := svc.Create(ctx, sess, "medium one", "", entities.UrgencyMedium, nil, nil, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Create(ctx, sess, "low one", "", entities.UrgencyLow, nil, nil, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Create(ctx, sess, "critical one", "", entities.UrgencyCritical, nil, nil, nil); err != nil {
		t.Fatal(err)
	}

	views, err := svc.List(ctx, sess, repositories.TaskFilters{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	got := []string{views[0].Title, views[1].Title, views[2].Title}
	want := []string{"critical one", "medium one", "low one"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestListAnnotatesDueDates(t *testing.T) {
	svc, _, sess := newTaskFixture()
	ctx := context.Background()

	overdue := time.Now().Add(-72 * time.Hour)
	if _, err := svc.Create(ctx, sess, "stale", "", "", nil, nil, &overdue); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Create(ctx, sess, "open ended", "", "", nil, nil, nil); err != nil {
		t.Fatal(err)
	}

	views, err := svc.List(ctx, sess, repositories.TaskFilters{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	byTitle := map[string]TaskView{}
	for _, v := range views {
		byTitle[v.Title] = v
	}
	if !byTitle["stale"].DueInfo.IsOverdue {
		t.Error("expected stale task to be overdue")
	}
	if byTitle["stale"].DueInfo.Label != "Overdue by 3 days" {
		t.Errorf("label = %q", byTitle["stale"].DueInfo.Label)
	}
	if byTitle["open ended"].DueInfo.Label != "Not specified" {
		t.Errorf("label = %q", byTitle["open ended"].DueInfo.Label)
	}
}

func TestUpdateClearsDueDate(t *testing.T) {
	svc, repo, sess := newTaskFixture()
	ctx := context.Background()

	due := time.Now().Add(24 * time.Hour)
	task, _ := svc.Create(ctx, sess, "flexible", "", "", nil, nil, &due)

	if _, err := svc.Update(ctx, sess, task.ID, UpdateInput{ClearDue: true}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	stored, _ := repo.GetByID(ctx, task.ID)
	if stored.DueDate != nil {
		t.Errorf("DueDate = %v, want nil", stored.DueDate)
	}
}
