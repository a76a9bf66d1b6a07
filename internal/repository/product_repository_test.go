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

func newProductTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return db
}

func TestReserveStockConditionalDecrement(t *testing.T) {
	db := newProductTestDB(t, "repo_reserve")
	repo := NewProductRepository(db)

	product := models.Product{
		ShopID: 1,
		Name:   "Maize Seed",
		Price:  models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		Stock:  5,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	affected, err := repo.ReserveStock(product.ID, 3)
	if err != nil {
		t.Fatalf("reserve failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("expected 1 affected row, got %d", affected)
	}

	// Only 2 left; asking for 3 must match no rows and change nothing.
	affected, err = repo.ReserveStock(product.ID, 3)
	if err != nil {
		t.Fatalf("second reserve failed: %v", err)
	}
	if affected != 0 {
		t.Fatalf("expected 0 affected rows, got %d", affected)
	}

	loaded, err := repo.GetByID(product.ID)
	if err != nil {
		t.Fatalf("load product failed: %v", err)
	}
	if loaded.Stock != 2 {
		t.Fatalf("expected stock 2, got %d", loaded.Stock)
	}
}

func TestReserveStockRejectsBadParams(t *testing.T) {
	db := newProductTestDB(t, "repo_reserve_params")
	repo := NewProductRepository(db)

	if _, err := repo.ReserveStock(0, 1); err == nil {
		t.Fatalf("expected error for zero product id")
	}
	if _, err := repo.ReserveStock(1, 0); err == nil {
		t.Fatalf("expected error for zero quantity")
	}
	if _, err := repo.ReserveStock(1, -2); err == nil {
		t.Fatalf("expected error for negative quantity")
	}
}

func TestReleaseStockRestores(t *testing.T) {
	db := newProductTestDB(t, "repo_release")
	repo := NewProductRepository(db)

	product := models.Product{
		ShopID: 1,
		Name:   "Neem Oil",
		Price:  models.NewMoneyFromDecimal(decimal.NewFromInt(9)),
		Stock:  1,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	if _, err := repo.ReserveStock(product.ID, 1); err != nil {
		t.Fatalf("reserve failed: %v", err)
	}
	if _, err := repo.ReleaseStock(product.ID, 1); err != nil {
		t.Fatalf("release failed: %v", err)
	}

	loaded, err := repo.GetByID(product.ID)
	if err != nil {
		t.Fatalf("load product failed: %v", err)
	}
	if loaded.Stock != 1 {
		t.Fatalf("expected stock back at 1, got %d", loaded.Stock)
	}
}

func TestProductListFilters(t *testing.T) {
	db := newProductTestDB(t, "repo_list")
	repo := NewProductRepository(db)

	fixtures := []models.Product{
		{ShopID: 1, Name: "Hybrid Maize Seed", Category: "seed", Price: models.NewMoneyFromDecimal(decimal.NewFromInt(12)), Stock: 10},
		{ShopID: 1, Name: "Copper Fungicide", Category: "cropprotection", Price: models.NewMoneyFromDecimal(decimal.NewFromInt(18)), Stock: 5},
		{ShopID: 2, Name: "Sukuma Seed", Category: "seed", Price: models.NewMoneyFromDecimal(decimal.NewFromInt(3)), Stock: 20},
	}
	for i := range fixtures {
		if err := db.Create(&fixtures[i]).Error; err != nil {
			t.Fatalf("create fixture failed: %v", err)
		}
	}

	products, total, err := repo.List(ProductListFilter{Category: "seed", Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list by category failed: %v", err)
	}
	if total != 2 || len(products) != 2 {
		t.Fatalf("expected 2 seed products, got total=%d len=%d", total, len(products))
	}

	products, total, err = repo.List(ProductListFilter{ShopID: 2, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list by shop failed: %v", err)
	}
	if total != 1 || products[0].Name != "Sukuma Seed" {
		t.Fatalf("expected only shop 2 product, got %+v", products)
	}

	_, total, err = repo.List(ProductListFilter{Search: "fungicide", Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list by search failed: %v", err)
	}
	if total != 1 {
		t.Fatalf("expected 1 search hit, got %d", total)
	}
}
