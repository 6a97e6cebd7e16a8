package schema

// MemberRoles holds the allowed values of the member role field.
var MemberRoles = []string{"Developer", "Designer", "Manager", "QA Engineer", "Product Owner"}

// MemberStatuses holds the allowed values of the member status field.
var MemberStatuses = []string{"active", "inactive"}

const (
	MemberStatusActive   = "active"
	MemberStatusInactive = "inactive"
)

type Member struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	JoinDate string `json:"joinDate"`
	Status   string `json:"status"`

	// location fields, populated by the address lookup; optional
	Address string  `json:"address,omitempty"`
	Lat     float64 `json:"lat,omitempty"`
	Lng     float64 `json:"lng,omitempty"`
}

func (m Member) EntityID() int {
	return m.ID
}
