package domain

// Portfolio Model: a pure many-to-many link between a User and a Stock.
// The composite primary key is the authoritative guard against duplicate
// entries; application-level pre-checks only produce a friendlier error.
type Portfolio struct {
	UserID  uint  `gorm:"primaryKey;autoIncrement:false" json:"userId"`  // Composite key part, foreign key to User
	StockID uint  `gorm:"primaryKey;autoIncrement:false" json:"stockId"` // Composite key part, foreign key to Stock
	User    User  `gorm:"foreignKey:UserID" json:"-"`                    // Owning user
	Stock   Stock `gorm:"foreignKey:StockID" json:"-"`                   // Linked stock
}
