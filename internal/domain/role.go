package domain

// Fixed role identifiers, seeded at migration time
const (
	RoleAdminID = 1 // Admin role ID
	RoleUserID  = 2 // Default role ID for new registrants
)

// Role Model
type Role struct {
	ID   uint   `gorm:"primaryKey" json:"id"`            // Fixed identifier, never auto-assigned
	Name string `gorm:"uniqueIndex;size:20" json:"name"` // Role name: Admin or User
}
