package listview

import (
	"testing"

	"github.com/stretchr/testify/require"

	"kyri56xcaesar/teamdash/internal/schema"
)

var sampleTasks = []schema.Task{
	{ID: 1, Title: "Fix login page", Description: "the session cookie expires early", Status: "todo", Priority: "high"},
	{ID: 2, Title: "Write release notes", Description: "for the spring release", Status: "in_progress", Priority: "low"},
	{ID: 3, Title: "Fix logout redirect", Description: "", Status: "done", Priority: "medium"},
	{ID: 4, Title: "Upgrade the database", Description: "session storage moves to redis", Status: "todo", Priority: "medium"},
}

func taskSearchFields(t schema.Task) []string {
	return []string{t.Title, t.Description}
}

func taskFieldValue(t schema.Task, field string) string {
	switch field {
	case "status":
		return t.Status
	case "priority":
		return t.Priority
	}

	return ""
}

func ids[T interface{ EntityID() int }](rows []T) []int {
	out := make([]int, len(rows))
	for i, r := range rows {
		out[i] = r.EntityID()
	}

	return out
}

func TestApply_SearchMatchesTitleOrDescription(t *testing.T) {
	v := Apply(sampleTasks, Query{Search: "fix"}, taskSearchFields, taskFieldValue)
	require.Equal(t, []int{1, 3}, ids(v.Rows))

	// description-only hit, case insensitive
	v = Apply(sampleTasks, Query{Search: "SESSION"}, taskSearchFields, taskFieldValue)
	require.Equal(t, []int{1, 4}, ids(v.Rows))

	// blank search matches everything
	v = Apply(sampleTasks, Query{Search: "   "}, taskSearchFields, taskFieldValue)
	require.Equal(t, 4, v.TotalMatched)
}

func TestApply_QuickFilterStatus(t *testing.T) {
	v := Apply(sampleTasks, Query{Filters: []Filter{{Field: "status", Value: "todo"}}}, taskSearchFields, taskFieldValue)

	require.Equal(t, 2, v.TotalMatched)
	for _, r := range v.Rows {
		require.Equal(t, "todo", r.Status)
	}
}

func TestApply_AllSentinelDisablesFilter(t *testing.T) {
	for _, value := range []string{FilterAll, ""} {
		v := Apply(sampleTasks, Query{Filters: []Filter{{Field: "status", Value: value}}}, taskSearchFields, taskFieldValue)
		require.Equal(t, 4, v.TotalMatched)
	}
}

func TestApply_FilterOrderIrrelevant(t *testing.T) {
	a := Query{Filters: []Filter{
		{Field: "status", Value: "todo"},
		{Field: "priority", Value: "medium"},
	}}
	b := Query{Filters: []Filter{
		{Field: "priority", Value: "medium"},
		{Field: "status", Value: "todo"},
	}}

	va := Apply(sampleTasks, a, taskSearchFields, taskFieldValue)
	vb := Apply(sampleTasks, b, taskSearchFields, taskFieldValue)

	require.Equal(t, va.Rows, vb.Rows)
	require.Equal(t, []int{4}, ids(va.Rows))
}

func TestApply_NarrowerSearchIsSubset(t *testing.T) {
	wide := Apply(sampleTasks, Query{Search: "fix"}, taskSearchFields, taskFieldValue)
	narrow := Apply(sampleTasks, Query{Search: "fix login"}, taskSearchFields, taskFieldValue)

	wideIDs := map[int]bool{}
	for _, id := range ids(wide.Rows) {
		wideIDs[id] = true
	}
	for _, id := range ids(narrow.Rows) {
		require.True(t, wideIDs[id])
	}
}

func TestApply_Pagination(t *testing.T) {
	v := Apply(sampleTasks, Query{Page: 1, PageSize: 3}, taskSearchFields, taskFieldValue)
	require.Equal(t, []int{1, 2, 3}, ids(v.Rows))
	require.Equal(t, 4, v.TotalMatched)
	require.Equal(t, 2, v.PageCount)

	v = Apply(sampleTasks, Query{Page: 2, PageSize: 3}, taskSearchFields, taskFieldValue)
	require.Equal(t, []int{4}, ids(v.Rows))

	// out-of-range pages clamp instead of failing
	v = Apply(sampleTasks, Query{Page: 99, PageSize: 3}, taskSearchFields, taskFieldValue)
	require.Equal(t, []int{4}, ids(v.Rows))

	v = Apply(sampleTasks, Query{Page: -1, PageSize: 3}, taskSearchFields, taskFieldValue)
	require.Equal(t, []int{1, 2, 3}, ids(v.Rows))
}

func TestApply_EmptyCollection(t *testing.T) {
	v := Apply([]schema.Task{}, Query{Search: "fix", Page: 1, PageSize: 10}, taskSearchFields, taskFieldValue)

	require.Empty(t, v.Rows)
	require.Zero(t, v.TotalMatched)
	require.Equal(t, 1, v.PageCount)
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	before := make([]schema.Task, len(sampleTasks))
	copy(before, sampleTasks)

	Apply(sampleTasks, Query{Search: "fix", Filters: []Filter{{Field: "status", Value: "todo"}}, Page: 1, PageSize: 1}, taskSearchFields, taskFieldValue)

	require.Equal(t, before, sampleTasks)
}

func TestCounts(t *testing.T) {
	counts := Counts(sampleTasks, func(tk schema.Task) string { return tk.Status })

	require.Equal(t, 4, counts[FilterAll])
	require.Equal(t, 2, counts["todo"])
	require.Equal(t, 1, counts["in_progress"])
	require.Equal(t, 1, counts["done"])
}
