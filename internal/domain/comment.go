package domain

import "time"

// Comment Model
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`             // Primary key
	Title     string    `gorm:"size:255;not null" json:"title"`   // Comment title
	Content   string    `gorm:"size:255;not null" json:"content"` // Comment body
	CreatedAt time.Time `json:"createdAt"`                        // Timestamp of creation
	UserID    uint      `gorm:"not null;index" json:"userId"`     // Foreign key to the authoring User, required
	StockID   *uint     `gorm:"index" json:"stockId"`             // Foreign key to Stock, nullable so a comment may outlive its stock
	User      User      `gorm:"foreignKey:UserID" json:"-"`       // Author relation, used to surface the username
}
