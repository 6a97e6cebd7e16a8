package tasks

import (
	"kyri56xcaesar/teamdash/internal/schema"
	"kyri56xcaesar/teamdash/internal/store"
)

// UnassignedLabel is shown when a task's member reference dangles.
const UnassignedLabel = "Unassigned"

// ResolveMemberName resolves a task's member reference to a display
// name. The reference is soft: deleting a member does not cascade, so
// a dangling id is not an error and yields the sentinel label. Total
// by construction, never fails.
func ResolveMemberName(id int, members []schema.Member) string {
	m, ok := store.FindByID(members, id)
	if !ok {
		return UnassignedLabel
	}

	return m.Name
}
