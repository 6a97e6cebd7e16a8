package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"kyri56xcaesar/teamdash/internal/schema"
)

// ErrRemote is the generic "operation failed" signal surfaced when the
// remote CRUD service rejects or drops a call. No retry, no backoff.
var ErrRemote = errors.New("remote operation failed")

// RemoteMembers consumes the mock REST service exposing the member
// collection at /demande. It satisfies Store[schema.Member]: Load is a
// plain list, Save reconciles the remote collection with per-item calls
// since the service has no whole-collection endpoint.
type RemoteMembers struct {
	BaseURL string
	Client  *http.Client
}

func NewRemoteMembers(baseURL string) *RemoteMembers {
	return &RemoteMembers{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (r *RemoteMembers) doJSON(ctx context.Context, method, url string, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, rd)
	if err != nil {
		return err
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := r.Client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRemote, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: %s %s -> %d: %s", ErrRemote, method, url, resp.StatusCode, string(b))
	}

	if out == nil {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// memberPayload is the member shape without the id: the server assigns
// ids on create.
type memberPayload struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Role     string  `json:"role"`
	JoinDate string  `json:"joinDate"`
	Status   string  `json:"status"`
	Address  string  `json:"address,omitempty"`
	Lat      float64 `json:"lat,omitempty"`
	Lng      float64 `json:"lng,omitempty"`
}

func payloadOf(m schema.Member) memberPayload {
	return memberPayload{
		Name:     m.Name,
		Email:    m.Email,
		Role:     m.Role,
		JoinDate: m.JoinDate,
		Status:   m.Status,
		Address:  m.Address,
		Lat:      m.Lat,
		Lng:      m.Lng,
	}
}

func (r *RemoteMembers) List(ctx context.Context) ([]schema.Member, error) {
	var members []schema.Member
	err := r.doJSON(ctx, http.MethodGet, r.BaseURL+"/demande", nil, &members)
	if err != nil {
		return nil, err
	}
	if members == nil {
		members = []schema.Member{}
	}

	return members, nil
}

func (r *RemoteMembers) GetByID(ctx context.Context, id int) (schema.Member, error) {
	var m schema.Member
	err := r.doJSON(ctx, http.MethodGet, fmt.Sprintf("%s/demande/%d", r.BaseURL, id), nil, &m)

	return m, err
}

func (r *RemoteMembers) Create(ctx context.Context, m schema.Member) (schema.Member, error) {
	var out schema.Member
	err := r.doJSON(ctx, http.MethodPost, r.BaseURL+"/demande", payloadOf(m), &out)

	return out, err
}

func (r *RemoteMembers) Update(ctx context.Context, id int, m schema.Member) (schema.Member, error) {
	var out schema.Member
	err := r.doJSON(ctx, http.MethodPut, fmt.Sprintf("%s/demande/%d", r.BaseURL, id), payloadOf(m), &out)

	return out, err
}

func (r *RemoteMembers) Delete(ctx context.Context, id int) error {
	return r.doJSON(ctx, http.MethodDelete, fmt.Sprintf("%s/demande/%d", r.BaseURL, id), nil, nil)
}

func (r *RemoteMembers) Load(ctx context.Context) ([]schema.Member, error) {
	return r.List(ctx)
}

// Save reconciles the desired collection against the remote one:
// known ids are replaced, unknown ids are created (the server picks the
// final id), remote ids missing from the desired set are deleted.
func (r *RemoteMembers) Save(ctx context.Context, items []schema.Member) error {
	current, err := r.List(ctx)
	if err != nil {
		return err
	}

	existing := make(map[int]bool, len(current))
	for _, m := range current {
		existing[m.ID] = true
	}

	keep := make(map[int]bool, len(items))
	for _, m := range items {
		if existing[m.ID] {
			keep[m.ID] = true
			if _, err := r.Update(ctx, m.ID, m); err != nil {
				return err
			}

			continue
		}
		if _, err := r.Create(ctx, m); err != nil {
			return err
		}
	}

	for _, m := range current {
		if !keep[m.ID] {
			if err := r.Delete(ctx, m.ID); err != nil {
				return err
			}
		}
	}

	return nil
}
