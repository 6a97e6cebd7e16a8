// Package members owns the member collection: CRUD through the form
// controller, filtered listing through the list engine, and the HTTP
// handlers exposing both.
package members

import (
	"context"
	"time"

	"kyri56xcaesar/teamdash/internal/form"
	"kyri56xcaesar/teamdash/internal/listview"
	"kyri56xcaesar/teamdash/internal/schema"
	"kyri56xcaesar/teamdash/internal/store"
)

type Service struct {
	store store.Store[schema.Member]
}

func NewService(s store.Store[schema.Member]) *Service {
	return &Service{store: s}
}

func searchFields(m schema.Member) []string {
	return []string{m.Name, m.Email}
}

func fieldValue(m schema.Member, field string) string {
	switch field {
	case "role":
		return m.Role
	case "status":
		return m.Status
	default:
		return ""
	}
}

// List derives a filtered, searched, paginated view of the collection.
func (s *Service) List(ctx context.Context, q listview.Query) (listview.View[schema.Member], error) {
	items, err := s.store.Load(ctx)
	if err != nil {
		return listview.View[schema.Member]{}, err
	}

	return listview.Apply(items, q, searchFields, fieldValue), nil
}

func (s *Service) Get(ctx context.Context, id int) (schema.Member, error) {
	items, err := s.store.Load(ctx)
	if err != nil {
		return schema.Member{}, err
	}

	m, ok := store.FindByID(items, id)
	if !ok {
		return schema.Member{}, store.ErrNotFound
	}

	return m, nil
}

// Counts tallies members per status for the dashboard.
func (s *Service) Counts(ctx context.Context) (map[string]int, error) {
	items, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	return listview.Counts(items, func(m schema.Member) string { return m.Status }), nil
}

// Create runs the add-mode form lifecycle: defaults, field application,
// whole-entity validation, id assignment and write-through persist.
func (s *Service) Create(ctx context.Context, cand schema.Member) (schema.Member, []schema.FieldError, error) {
	ctl := form.New(s.store, hooks())
	if err := ctl.Init(ctx, form.ModeAdd, 0); err != nil {
		return schema.Member{}, nil, err
	}

	applyCandidate(ctl, cand, form.ModeAdd)

	return ctl.Submit(ctx)
}

// Update replaces every field of the member except its id.
func (s *Service) Update(ctx context.Context, id int, cand schema.Member) (schema.Member, []schema.FieldError, error) {
	ctl := form.New(s.store, hooks())
	if err := ctl.Init(ctx, form.ModeEdit, id); err != nil {
		return schema.Member{}, nil, err
	}

	applyCandidate(ctl, cand, form.ModeEdit)

	return ctl.Submit(ctx)
}

// Delete removes the member and re-persists the collection. Tasks
// referencing the id are left alone; the dangling reference degrades to
// an "Unassigned" label on the task side.
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

func hooks() form.Hooks[schema.Member] {
	return form.Hooks[schema.Member]{
		Defaults: func() schema.Member {
			return schema.Member{
				Status:   schema.MemberStatusActive,
				JoinDate: time.Now().Format(schema.DateLayout),
			}
		},
		Validate: func(m schema.Member, _ form.Mode) []schema.FieldError {
			return schema.ValidateMember(m).Errors
		},
		CheckField: func(m schema.Member, field string, _ form.Mode) []schema.FieldError {
			return schema.CheckMemberField(m, field)
		},
		Apply: applyField,
		SetID: func(m *schema.Member, id int) { m.ID = id },
	}
}

func applyField(m *schema.Member, field string, value any) {
	switch field {
	case "name":
		m.Name, _ = value.(string)
	case "email":
		m.Email, _ = value.(string)
	case "role":
		m.Role, _ = value.(string)
	case "joinDate":
		m.JoinDate, _ = value.(string)
	case "status":
		m.Status, _ = value.(string)
	case "address":
		m.Address, _ = value.(string)
	case "lat":
		m.Lat, _ = value.(float64)
	case "lng":
		m.Lng, _ = value.(float64)
	}
}

// applyCandidate pushes the candidate's fields into the draft. In add
// mode, empty status and join date keep the type defaults.
func applyCandidate(ctl *form.Controller[schema.Member], cand schema.Member, mode form.Mode) {
	ctl.SetField("name", cand.Name)
	ctl.SetField("email", cand.Email)
	ctl.SetField("role", cand.Role)
	if cand.JoinDate != "" || mode == form.ModeEdit {
		ctl.SetField("joinDate", cand.JoinDate)
	}
	if cand.Status != "" || mode == form.ModeEdit {
		ctl.SetField("status", cand.Status)
	}
	ctl.SetField("address", cand.Address)
	ctl.SetField("lat", cand.Lat)
	ctl.SetField("lng", cand.Lng)
}
