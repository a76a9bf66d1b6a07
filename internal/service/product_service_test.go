package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/agrimarket/agrimarket/internal/constants"
	"github.com/agrimarket/agrimarket/internal/models"
	"github.com/agrimarket/agrimarket/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newProductTestService(t *testing.T, name string) (*ProductService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Shop{}, &models.Product{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewProductService(repository.NewProductRepository(db), repository.NewShopRepository(db)), db
}

func createTestShop(t *testing.T, db *gorm.DB, ownerID uint) *models.Shop {
	t.Helper()
	shop := models.Shop{OwnerID: ownerID, Name: fmt.Sprintf("Shop %d", ownerID)}
	if err := db.Create(&shop).Error; err != nil {
		t.Fatalf("create shop failed: %v", err)
	}
	return &shop
}

func TestProductCreateRequiresShop(t *testing.T) {
	svc, _ := newProductTestService(t, "product_no_shop")

	_, err := svc.Create(42, ProductInput{Name: "Bean Seed", Price: models.NewMoneyFromDecimal(decimal.NewFromInt(4))})
	if !errors.Is(err, ErrShopNotFound) {
		t.Fatalf("expected shop not found, got: %v", err)
	}
}

func TestProductCreateNormalizesCategory(t *testing.T) {
	svc, db := newProductTestService(t, "product_category")
	createTestShop(t, db, 1)

	product, err := svc.Create(1, ProductInput{Name: "Mystery Dust", Category: "fertilizer"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if product.Category != constants.CategorySeed {
		t.Fatalf("unknown category should fall back to seed, got %q", product.Category)
	}

	product, err = svc.Create(1, ProductInput{Name: "Neem Oil", Category: " CropProtection "})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if product.Category != constants.CategoryCropProtection {
		t.Fatalf("expected cropprotection, got %q", product.Category)
	}
}

func TestProductUpdateRejectsForeignOwner(t *testing.T) {
	svc, db := newProductTestService(t, "product_foreign_owner")
	createTestShop(t, db, 1)
	createTestShop(t, db, 2)

	product, err := svc.Create(1, ProductInput{Name: "Hybrid Maize", Stock: 10})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	_, err = svc.Update(2, product.ID, ProductInput{Name: "Stolen Maize"})
	if !errors.Is(err, ErrNotProductOwner) {
		t.Fatalf("expected not product owner, got: %v", err)
	}
	if err := svc.Delete(2, product.ID); !errors.Is(err, ErrNotProductOwner) {
		t.Fatalf("expected not product owner on delete, got: %v", err)
	}

	// The rightful owner can still change it.
	updated, err := svc.Update(1, product.ID, ProductInput{Name: "Hybrid Maize 2kg", Stock: 5})
	if err != nil {
		t.Fatalf("owner update failed: %v", err)
	}
	if updated.Name != "Hybrid Maize 2kg" || updated.Stock != 5 {
		t.Fatalf("update not applied: %+v", updated)
	}
}

func TestProductDeleteRemovesFromCatalog(t *testing.T) {
	svc, db := newProductTestService(t, "product_delete")
	createTestShop(t, db, 1)

	product, err := svc.Create(1, ProductInput{Name: "Copper Fungicide"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := svc.Delete(1, product.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := svc.Get(product.ID); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected product not found after delete, got: %v", err)
	}
}
