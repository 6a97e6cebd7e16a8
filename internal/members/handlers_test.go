package members

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"kyri56xcaesar/teamdash/internal/schema"
	"kyri56xcaesar/teamdash/internal/store"
	"kyri56xcaesar/teamdash/pkg/messages"
)

func testRouter(seed ...schema.Member) (*gin.Engine, *store.Memory[schema.Member]) {
	gin.SetMode(gin.TestMode)

	st := store.NewMemory(seed...)
	h := NewHandler(NewService(st), messages.NewCatalog("testdata", "en"), "en")

	r := gin.New()
	r.GET("/members", h.List)
	r.GET("/members/:id", h.Get)
	r.POST("/members", h.Create)
	r.PUT("/members/:id", h.Update)
	r.DELETE("/members/:id", h.Delete)

	return r, st
}

func doRequest(r *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	var rd *strings.Reader
	if body == "" {
		rd = strings.NewReader("")
	} else {
		rd = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func seedMembers() []schema.Member {
	return []schema.Member{
		{ID: 1, Name: "Alice", Email: "alice@example.com", Role: "Developer", JoinDate: "2024-01-15", Status: "active"},
		{ID: 2, Name: "Bob", Email: "bob@example.com", Role: "Designer", JoinDate: "2024-02-01", Status: "inactive"},
		{ID: 3, Name: "Carol", Email: "carol@example.com", Role: "Developer", JoinDate: "2024-03-01", Status: "active"},
	}
}

func TestList_FiltersAndSearch(t *testing.T) {
	r, _ := testRouter(seedMembers()...)

	w := doRequest(r, http.MethodGet, "/members?role=Developer&status=active", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Items []schema.Member `json:"items"`
		Total int             `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 2, resp.Total)
	require.Equal(t, "Alice", resp.Items[0].Name)
	require.Equal(t, "Carol", resp.Items[1].Name)

	w = doRequest(r, http.MethodGet, "/members?search=bob", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Total)
	require.Equal(t, "Bob", resp.Items[0].Name)

	// "all" clears a filter
	w = doRequest(r, http.MethodGet, "/members?role=all", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 3, resp.Total)
}

func TestGet(t *testing.T) {
	r, _ := testRouter(seedMembers()...)

	w := doRequest(r, http.MethodGet, "/members/2", "")
	require.Equal(t, http.StatusOK, w.Code)

	var m schema.Member
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	require.Equal(t, "Bob", m.Name)

	w = doRequest(r, http.MethodGet, "/members/42", "")
	require.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(r, http.MethodGet, "/members/abc", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreate(t *testing.T) {
	r, st := testRouter(seedMembers()...)

	w := doRequest(r, http.MethodPost, "/members", `{
		"name": "Dave",
		"email": "dave@example.com",
		"role": "QA Engineer",
		"joinDate": "2024-04-01",
		"status": "active"
	}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var m schema.Member
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	require.Equal(t, 4, m.ID)

	items, _ := st.Load(context.Background())
	require.Len(t, items, 4)
}

func TestCreate_ValidationErrors(t *testing.T) {
	r, st := testRouter(seedMembers()...)

	w := doRequest(r, http.MethodPost, "/members", `{
		"name": "D",
		"email": "not-an-email",
		"role": "Developer",
		"joinDate": "2024-04-01",
		"status": "active"
	}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Errors []schema.FieldError `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Errors, 2)
	require.Equal(t, "name", resp.Errors[0].Field)
	require.Equal(t, schema.CodeTooShort, resp.Errors[0].Code)
	require.Equal(t, "email", resp.Errors[1].Field)
	require.Equal(t, schema.CodeInvalidEmail, resp.Errors[1].Code)

	// nothing was written
	items, _ := st.Load(context.Background())
	require.Len(t, items, 3)
}

func TestUpdate(t *testing.T) {
	r, st := testRouter(seedMembers()...)

	w := doRequest(r, http.MethodPut, "/members/1", `{
		"name": "Alicia",
		"email": "alice@example.com",
		"role": "Manager",
		"joinDate": "2024-01-15",
		"status": "active"
	}`)
	require.Equal(t, http.StatusOK, w.Code)

	items, _ := st.Load(context.Background())
	require.Equal(t, "Alicia", items[0].Name)
	require.Equal(t, "Manager", items[0].Role)

	w = doRequest(r, http.MethodPut, "/members/42", `{
		"name": "Ghost",
		"email": "ghost@example.com",
		"role": "Manager",
		"joinDate": "2024-01-15",
		"status": "active"
	}`)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestDelete_RequiresConfirmation(t *testing.T) {
	r, st := testRouter(seedMembers()...)

	w := doRequest(r, http.MethodDelete, "/members/1", "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	items, _ := st.Load(context.Background())
	require.Len(t, items, 3)

	w = doRequest(r, http.MethodDelete, "/members/1?confirm=true", "")
	require.Equal(t, http.StatusOK, w.Code)

	items, _ = st.Load(context.Background())
	require.Len(t, items, 2)

	w = doRequest(r, http.MethodDelete, "/members/1?confirm=true", "")
	require.Equal(t, http.StatusNotFound, w.Code)
}
