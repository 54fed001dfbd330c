package db

import (
	"testing"

	"stocktracker/internal/domain"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestAutoMigrateSeedsFixedRoles(t *testing.T) {
	// Setup in-memory database
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}

	// Migrating twice must be idempotent
	for i := 0; i < 2; i++ {
		if err := AutoMigrate(db); err != nil {
			t.Fatalf("Migration %d failed: %v", i+1, err)
		}
	}

	var roles []domain.Role
	if err := db.Order("id").Find(&roles).Error; err != nil {
		t.Fatalf("Failed to load roles: %v", err)
	}
	if len(roles) != 2 {
		t.Fatalf("Expected exactly 2 seeded roles, got %d", len(roles))
	}
	if roles[0].ID != domain.RoleAdminID || roles[0].Name != "Admin" {
		t.Errorf("Expected role 1 Admin, got %d %s", roles[0].ID, roles[0].Name)
	}
	if roles[1].ID != domain.RoleUserID || roles[1].Name != "User" {
		t.Errorf("Expected role 2 User, got %d %s", roles[1].ID, roles[1].Name)
	}
}

func TestPortfolioCompositeKeyRejectsDuplicates(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("Migration failed: %v", err)
	}

	user := domain.User{Username: "alice", Email: "alice@example.com", Password: "x", RoleID: domain.RoleUserID}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	stock := domain.Stock{Symbol: "AAPL", CompanyName: "Apple Inc", Purchase: 100, LastDiv: 1, Industry: "Tech", MarketCap: 1000}
	if err := db.Create(&stock).Error; err != nil {
		t.Fatalf("Failed to create stock: %v", err)
	}

	// The composite primary key is the authoritative duplicate guard, even
	// when an application-level pre-check has been raced past
	link := domain.Portfolio{UserID: user.ID, StockID: stock.ID}
	if err := db.Create(&link).Error; err != nil {
		t.Fatalf("Failed to create portfolio row: %v", err)
	}
	dup := domain.Portfolio{UserID: user.ID, StockID: stock.ID}
	if err := db.Create(&dup).Error; err == nil {
		t.Error("Expected the composite key to reject a duplicate row")
	}
}
