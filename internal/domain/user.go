package domain

// User Model
type User struct {
	ID         uint        `gorm:"primaryKey" json:"id"`                         // Primary key
	Username   string      `gorm:"uniqueIndex;size:50;not null" json:"username"` // Unique username, stored lowercase
	Email      string      `gorm:"uniqueIndex;size:255;not null" json:"email"`   // Unique email address
	Password   string      `gorm:"size:255;not null" json:"-"`                   // Hashed password, never serialized
	RoleID     uint        `gorm:"not null;default:2" json:"roleId"`             // Foreign key to Role, defaults to the User role
	Role       Role        `gorm:"foreignKey:RoleID" json:"role,omitempty"`      // Assigned role
	Comments   []Comment   `gorm:"foreignKey:UserID" json:"-"`                   // Comments authored by this user
	Portfolios []Portfolio `gorm:"foreignKey:UserID" json:"-"`                   // Portfolio links owned by this user
}
