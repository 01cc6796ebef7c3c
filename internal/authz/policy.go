package authz

// Role is the closed set of account roles.
type Role string

const (
	RoleAdmin          Role = "admin"
	RoleCoach          Role = "coach"
	RoleAssistantCoach Role = "assistant_coach"
	RoleObserver       Role = "observer"
)

// Capability names an operation class a role may or may not perform.
type Capability string

const (
	ManageUsers  Capability = "manage_users"
	Impersonate  Capability = "impersonate"
	ManageRoster Capability = "manage_roster"
	RecordMatch  Capability = "record_match"
	ViewAnalysis Capability = "view_analysis"
)

// permissions is the whole authorization policy. Role checks must go
// through Allowed instead of comparing role strings at call sites.
var permissions = map[Role]map[Capability]bool{
	RoleAdmin: {
		ManageUsers:  true,
		Impersonate:  true,
		ManageRoster: true,
		RecordMatch:  true,
		ViewAnalysis: true,
	},
	RoleCoach: {
		ManageRoster: true,
		RecordMatch:  true,
		ViewAnalysis: true,
	},
	RoleAssistantCoach: {
		RecordMatch:  true,
		ViewAnalysis: true,
	},
	RoleObserver: {
		ViewAnalysis: true,
	},
}

// Allowed reports whether the role grants the capability. Unknown
// roles hold no capabilities.
func Allowed(role Role, capability Capability) bool {
	return permissions[role][capability]
}

// Valid reports whether the role is one of the defined roles.
func (r Role) Valid() bool {
	_, ok := permissions[r]
	return ok
}

// All returns every defined role name, used for the roles table seed.
func All() []Role {
	return []Role{RoleAdmin, RoleCoach, RoleAssistantCoach, RoleObserver}
}

// SelfRegisterable reports whether a role may be chosen on the public
// registration form. Admin accounts are only created by other admins
// or the startup bootstrap.
func (r Role) SelfRegisterable() bool {
	return r.Valid() && r != RoleAdmin
}
