// Package tasks owns the task collection: CRUD through the form
// controller, quick-filtered listing with assignee resolution, and the
// HTTP handlers exposing both.
package tasks

import (
	"context"

	"kyri56xcaesar/teamdash/internal/form"
	"kyri56xcaesar/teamdash/internal/listview"
	"kyri56xcaesar/teamdash/internal/schema"
	"kyri56xcaesar/teamdash/internal/store"
	"kyri56xcaesar/teamdash/internal/utils"
)

// Item is a task enriched with its resolved assignee display name.
type Item struct {
	schema.Task
	Assignee string `json:"assignee"`
}

// ListResult carries one page of tasks plus the per-status counts of
// the whole collection, for the quick filter summary cards.
type ListResult struct {
	View   listview.View[Item]
	Counts map[string]int
}

type Service struct {
	store   store.Store[schema.Task]
	members store.Store[schema.Member]
}

func NewService(s store.Store[schema.Task], members store.Store[schema.Member]) *Service {
	return &Service{store: s, members: members}
}

func searchFields(t schema.Task) []string {
	return []string{t.Title, t.Description}
}

func fieldValue(t schema.Task, field string) string {
	switch field {
	case "status":
		return t.Status
	case "priority":
		return t.Priority
	default:
		return ""
	}
}

func (s *Service) List(ctx context.Context, q listview.Query) (ListResult, error) {
	items, err := s.store.Load(ctx)
	if err != nil {
		return ListResult{}, err
	}
	members, err := s.members.Load(ctx)
	if err != nil {
		return ListResult{}, err
	}

	view := listview.Apply(items, q, searchFields, fieldValue)

	rows := utils.Map(view.Rows, func(t schema.Task) Item {
		return Item{Task: t, Assignee: ResolveMemberName(t.MemberID, members)}
	})

	return ListResult{
		View: listview.View[Item]{
			Rows:         rows,
			TotalMatched: view.TotalMatched,
			PageCount:    view.PageCount,
		},
		// counts always cover the whole collection, not the current page
		Counts: listview.Counts(items, func(t schema.Task) string { return t.Status }),
	}, nil
}

func (s *Service) Get(ctx context.Context, id int) (Item, error) {
	items, err := s.store.Load(ctx)
	if err != nil {
		return Item{}, err
	}

	t, ok := store.FindByID(items, id)
	if !ok {
		return Item{}, store.ErrNotFound
	}

	members, err := s.members.Load(ctx)
	if err != nil {
		return Item{}, err
	}

	return Item{Task: t, Assignee: ResolveMemberName(t.MemberID, members)}, nil
}

// Counts tallies tasks per status for the dashboard.
func (s *Service) Counts(ctx context.Context) (map[string]int, error) {
	items, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	return listview.Counts(items, func(t schema.Task) string { return t.Status }), nil
}

// Create runs the add-mode form lifecycle. The due date floor applies
// here: a new task may not be due before today.
func (s *Service) Create(ctx context.Context, cand schema.Task) (schema.Task, []schema.FieldError, error) {
	ctl := form.New(s.store, hooks())
	if err := ctl.Init(ctx, form.ModeAdd, 0); err != nil {
		return schema.Task{}, nil, err
	}

	applyCandidate(ctl, cand, form.ModeAdd)

	return ctl.Submit(ctx)
}

// Update replaces every field of the task except its id. Overdue legacy
// tasks stay editable: the due date floor is not enforced here.
func (s *Service) Update(ctx context.Context, id int, cand schema.Task) (schema.Task, []schema.FieldError, error) {
	ctl := form.New(s.store, hooks())
	if err := ctl.Init(ctx, form.ModeEdit, id); err != nil {
		return schema.Task{}, nil, err
	}

	applyCandidate(ctl, cand, form.ModeEdit)

	return ctl.Submit(ctx)
}

func (s *Service) Delete(ctx context.Context, id int) error {
	items, err := s.store.Load(ctx)
	if err != nil {
		return err
	}

	out, found := store.RemoveByID(items, id)
	if !found {
		return store.ErrNotFound
	}

	return s.store.Save(ctx, out)
}

func hooks() form.Hooks[schema.Task] {
	return form.Hooks[schema.Task]{
		Defaults: func() schema.Task {
			return schema.Task{
				Status:   schema.TaskStatusTodo,
				Priority: schema.TaskPriorityMedium,
			}
		},
		Validate: func(t schema.Task, mode form.Mode) []schema.FieldError {
			return schema.ValidateTask(t, mode == form.ModeAdd).Errors
		},
		CheckField: func(t schema.Task, field string, mode form.Mode) []schema.FieldError {
			return schema.CheckTaskField(t, field, mode == form.ModeAdd)
		},
		Apply: applyField,
		SetID: func(t *schema.Task, id int) { t.ID = id },
	}
}

func applyField(t *schema.Task, field string, value any) {
	switch field {
	case "title":
		t.Title, _ = value.(string)
	case "description":
		t.Description, _ = value.(string)
	case "dueDate":
		t.DueDate, _ = value.(string)
	case "status":
		t.Status, _ = value.(string)
	case "priority":
		t.Priority, _ = value.(string)
	case "memberId":
		t.MemberID, _ = value.(int)
	}
}

// applyCandidate pushes the candidate's fields into the draft. In add
// mode, empty status and priority keep the type defaults.
func applyCandidate(ctl *form.Controller[schema.Task], cand schema.Task, mode form.Mode) {
	ctl.SetField("title", cand.Title)
	ctl.SetField("description", cand.Description)
	ctl.SetField("dueDate", cand.DueDate)
	if cand.Status != "" || mode == form.ModeEdit {
		ctl.SetField("status", cand.Status)
	}
	if cand.Priority != "" || mode == form.ModeEdit {
		ctl.SetField("priority", cand.Priority)
	}
	ctl.SetField("memberId", cand.MemberID)
}
