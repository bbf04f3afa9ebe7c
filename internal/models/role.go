package models

// Role is the closed set of account types. Every protected route carries an
// explicit allow-list of these instead of branching on raw strings.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
	RoleDoctor    Role = "doctor"
	RoleUser      Role = "user"
	RoleGuest     Role = "guest"
)

// ValidRole reports whether s names a known role.
func ValidRole(s string) bool {
	switch Role(s) {
	case RoleAdmin, RoleModerator, RoleDoctor, RoleUser, RoleGuest:
		return true
	}
	return false
}

// Elevated reports whether the role may moderate other users' content.
func (r Role) Elevated() bool {
	return r == RoleAdmin || r == RoleModerator
}

// AllowedCategories returns the post categories the role may publish to.
func (r Role) AllowedCategories() []Category {
	if r.Elevated() {
		return []Category{CategoryCommunity, CategoryResearch, CategoryCourses}
	}
	return []Category{CategoryCommunity}
}

// MayPublish reports whether the role may create or move a post into c.
func (r Role) MayPublish(c Category) bool {
	for _, allowed := range r.AllowedCategories() {
		if c == allowed {
			return true
		}
	}
	return false
}
