package main

import (
	"strings"

	"github.com/agrimarket/agrimarket/internal/config"
	"github.com/agrimarket/agrimarket/internal/constants"
	"github.com/agrimarket/agrimarket/internal/logger"
	"github.com/agrimarket/agrimarket/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	users := []struct {
		Name     string
		Email    string
		Password string
		Role     string
		Phone    string
	}{
		{Name: "Green Valley Farm", Email: "farmer@agrimarket.local", Password: "farmer123", Role: constants.RoleFarmer, Phone: "0712000001"},
		{Name: "AgriSupply Store", Email: "shop@agrimarket.local", Password: "shop1234", Role: constants.RoleShopOwner, Phone: "0712000002"},
		{Name: "Demo Buyer", Email: "buyer@agrimarket.local", Password: "buyer123", Role: constants.RoleBuyer, Phone: "0712000003"},
	}

	userIDs := map[string]uint{}
	for _, u := range users {
		email := strings.ToLower(u.Email)
		var existing models.User
		if err := models.DB.Where("email = ?", email).First(&existing).Error; err == nil {
			stdLog.Printf("User already exists: %s", email)
			userIDs[email] = existing.ID
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			stdLog.Fatalf("Failed to hash password for %s: %v", email, err)
		}
		user := models.User{
			Name:         u.Name,
			Email:        email,
			PasswordHash: string(hash),
			Role:         u.Role,
			Phone:        u.Phone,
		}
		if err := models.DB.Create(&user).Error; err != nil {
			stdLog.Printf("Failed to create user %s: %v", email, err)
			continue
		}
		stdLog.Printf("Created user: %s (%s)", email, u.Role)
		userIDs[email] = user.ID
	}

	shops := []models.Shop{
		{
			OwnerID:     userIDs["farmer@agrimarket.local"],
			Name:        "Green Valley Farm Shop",
			Description: "Certified seeds straight from the farm",
			Address:     "12 Valley Road, Nakuru",
		},
		{
			OwnerID:     userIDs["shop@agrimarket.local"],
			Name:        "AgriSupply Store",
			Description: "Crop protection products for smallholders",
			Address:     "3 Market Street, Eldoret",
		},
	}

	shopIDs := map[uint]uint{}
	for _, s := range shops {
		if s.OwnerID == 0 {
			continue
		}
		var existing models.Shop
		if err := models.DB.Where("owner_id = ?", s.OwnerID).First(&existing).Error; err == nil {
			stdLog.Printf("Shop already exists: %s", existing.Name)
			shopIDs[s.OwnerID] = existing.ID
			continue
		}
		shop := s
		if err := models.DB.Create(&shop).Error; err != nil {
			stdLog.Printf("Failed to create shop %s: %v", s.Name, err)
			continue
		}
		stdLog.Printf("Created shop: %s", shop.Name)
		shopIDs[s.OwnerID] = shop.ID
	}

	farmShopID := shopIDs[userIDs["farmer@agrimarket.local"]]
	storeShopID := shopIDs[userIDs["shop@agrimarket.local"]]

	products := []models.Product{
		{
			ShopID:      farmShopID,
			Name:        "Hybrid Maize Seed 2kg",
			Description: "Drought tolerant hybrid maize, 90 day maturity",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(12.50)),
			Stock:       120,
			Category:    constants.CategorySeed,
		},
		{
			ShopID:      farmShopID,
			Name:        "Sukuma Wiki Seed 100g",
			Description: "Open pollinated collard greens seed",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(3.20)),
			Stock:       200,
			Category:    constants.CategorySeed,
		},
		{
			ShopID:      storeShopID,
			Name:        "Copper Fungicide 1L",
			Description: "Broad spectrum fungicide for vegetables",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(18.00)),
			Stock:       45,
			Category:    constants.CategoryCropProtection,
		},
		{
			ShopID:      storeShopID,
			Name:        "Neem Oil Concentrate 500ml",
			Description: "Organic pest control concentrate",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(9.75)),
			Stock:       60,
			Category:    constants.CategoryCropProtection,
		},
	}

	for _, p := range products {
		if p.ShopID == 0 {
			continue
		}
		var existing models.Product
		if err := models.DB.Where("shop_id = ? AND name = ?", p.ShopID, p.Name).First(&existing).Error; err == nil {
			stdLog.Printf("Product already exists: %s", p.Name)
			continue
		}
		product := p
		if err := models.DB.Create(&product).Error; err != nil {
			stdLog.Printf("Failed to create product %s: %v", p.Name, err)
			continue
		}
		stdLog.Printf("Created product: %s", product.Name)
	}

	stdLog.Printf("Seeding complete")
}
