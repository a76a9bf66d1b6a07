package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/agrimarket/agrimarket/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newCartRepoTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Cart{}, &models.CartItem{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return db
}

func TestIncrementItemQuantityKeepsSnapshotPrice(t *testing.T) {
	db := newCartRepoTestDB(t, "cart_repo_increment")
	repo := NewCartRepository(db)

	cart, err := repo.CreateForOwner(1)
	if err != nil {
		t.Fatalf("create cart failed: %v", err)
	}
	item := models.CartItem{
		CartID:    cart.ID,
		ProductID: 10,
		Name:      "Maize Seed",
		UnitPrice: models.NewMoneyFromDecimal(decimal.NewFromFloat(12.5)),
		Quantity:  2,
	}
	if err := repo.AppendItem(&item); err != nil {
		t.Fatalf("append item failed: %v", err)
	}

	affected, err := repo.IncrementItemQuantity(cart.ID, 10, 3)
	if err != nil {
		t.Fatalf("increment failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("expected 1 affected row, got %d", affected)
	}

	// A product not in the cart matches nothing.
	affected, err = repo.IncrementItemQuantity(cart.ID, 99, 1)
	if err != nil {
		t.Fatalf("increment absent line failed: %v", err)
	}
	if affected != 0 {
		t.Fatalf("expected 0 affected rows, got %d", affected)
	}

	loaded, err := repo.GetByOwner(1)
	if err != nil {
		t.Fatalf("load cart failed: %v", err)
	}
	if len(loaded.Items) != 1 {
		t.Fatalf("expected one line, got %d", len(loaded.Items))
	}
	if loaded.Items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", loaded.Items[0].Quantity)
	}
	if !loaded.Items[0].UnitPrice.Equal(decimal.NewFromFloat(12.5)) {
		t.Fatalf("expected snapshot price untouched, got %s", loaded.Items[0].UnitPrice.String())
	}
}

func TestRemoveAndClearItems(t *testing.T) {
	db := newCartRepoTestDB(t, "cart_repo_remove")
	repo := NewCartRepository(db)

	cart, err := repo.CreateForOwner(2)
	if err != nil {
		t.Fatalf("create cart failed: %v", err)
	}
	for i, productID := range []uint{21, 22, 23} {
		item := models.CartItem{
			CartID:    cart.ID,
			ProductID: productID,
			Name:      fmt.Sprintf("Item %d", i),
			UnitPrice: models.NewMoneyFromDecimal(decimal.NewFromInt(int64(i + 1))),
			Quantity:  1,
		}
		if err := repo.AppendItem(&item); err != nil {
			t.Fatalf("append item failed: %v", err)
		}
	}

	// Removing an absent line succeeds silently.
	if err := repo.RemoveItem(cart.ID, 404); err != nil {
		t.Fatalf("remove absent line failed: %v", err)
	}
	if err := repo.RemoveItem(cart.ID, 22); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	loaded, err := repo.GetByOwner(2)
	if err != nil {
		t.Fatalf("load cart failed: %v", err)
	}
	if len(loaded.Items) != 2 {
		t.Fatalf("expected 2 lines after removal, got %d", len(loaded.Items))
	}

	if err := repo.ClearItems(cart.ID); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	loaded, err = repo.GetByOwner(2)
	if err != nil {
		t.Fatalf("reload cart failed: %v", err)
	}
	if len(loaded.Items) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(loaded.Items))
	}
}
