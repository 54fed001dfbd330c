package domain

import "time"

// Stock Model
type Stock struct {
	ID          uint      `gorm:"primaryKey" json:"id"`                         // Primary key
	Symbol      string    `gorm:"uniqueIndex;size:5;not null" json:"symbol"`    // Ticker symbol, stored uppercase
	CompanyName string    `gorm:"size:50;not null" json:"companyName"`          // Company name
	Purchase    float64   `gorm:"not null" json:"purchase"`                     // Purchase price
	LastDiv     float64   `gorm:"not null" json:"lastDiv"`                      // Last dividend
	Industry    string    `gorm:"size:10;not null" json:"industry"`             // Industry sector
	MarketCap   int64     `gorm:"not null" json:"marketCap"`                    // Market capitalization
	CreatedAt   time.Time `json:"createdAt"`                                    // Timestamp of creation
	Comments    []Comment `gorm:"foreignKey:StockID" json:"comments,omitempty"` // Comments on this stock
}
