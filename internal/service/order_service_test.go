package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/agrimarket/agrimarket/internal/models"
	"github.com/agrimarket/agrimarket/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newOrderTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Shop{}, &models.Product{}, &models.Cart{}, &models.CartItem{},
		&models.Order{}, &models.OrderItem{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	// Checkout runs inside models.DB.Transaction.
	models.DB = db
	return db
}

func newOrderTestService(db *gorm.DB) *OrderService {
	return NewOrderService(
		repository.NewOrderRepository(db),
		repository.NewProductRepository(db),
		repository.NewCartRepository(db),
		nil,
	)
}

func createOrderTestProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int) *models.Product {
	t.Helper()
	product := models.Product{
		ShopID: 1,
		Name:   name,
		Price:  models.NewMoneyFromDecimal(decimal.NewFromFloat(price)),
		Stock:  stock,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return &product
}

func productStock(t *testing.T, db *gorm.DB, id uint) int {
	t.Helper()
	var product models.Product
	if err := db.First(&product, id).Error; err != nil {
		t.Fatalf("load product failed: %v", err)
	}
	return product.Stock
}

func TestCheckoutEmptyOrder(t *testing.T) {
	db := newOrderTestDB(t, "order_empty")
	svc := newOrderTestService(db)

	if _, err := svc.Checkout(CheckoutInput{OwnerID: 1}); !errors.Is(err, ErrEmptyOrder) {
		t.Fatalf("expected empty order, got: %v", err)
	}
	if _, err := svc.Checkout(CheckoutInput{OwnerID: 1, UseCart: true}); !errors.Is(err, ErrEmptyOrder) {
		t.Fatalf("expected empty order from empty cart, got: %v", err)
	}
}

func TestCheckoutInsufficientStockLeavesNoTrace(t *testing.T) {
	db := newOrderTestDB(t, "order_insufficient")
	svc := newOrderTestService(db)
	product := createOrderTestProduct(t, db, "Maize Seed", 12.5, 2)

	_, err := svc.Checkout(CheckoutInput{
		OwnerID: 1,
		Items:   []CheckoutItem{{ProductID: product.ID, Quantity: 3}},
		Street:  "12 Valley Road",
		City:    "Nakuru",
		Phone:   "0712000001",
	})
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected insufficient stock, got: %v", err)
	}
	if got := productStock(t, db, product.ID); got != 2 {
		t.Fatalf("expected stock untouched at 2, got %d", got)
	}

	var count int64
	db.Model(&models.Order{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no order rows, got %d", count)
	}
}

func TestCheckoutRollsBackEarlierReservations(t *testing.T) {
	db := newOrderTestDB(t, "order_rollback")
	svc := newOrderTestService(db)
	first := createOrderTestProduct(t, db, "Neem Oil", 9.75, 10)
	second := createOrderTestProduct(t, db, "Fungicide", 18, 1)

	_, err := svc.Checkout(CheckoutInput{
		OwnerID: 1,
		Items: []CheckoutItem{
			{ProductID: first.ID, Quantity: 4},
			{ProductID: second.ID, Quantity: 2},
		},
		Street: "3 Market Street",
		City:   "Eldoret",
		Phone:  "0712000002",
	})
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected insufficient stock on second item, got: %v", err)
	}
	if got := productStock(t, db, first.ID); got != 10 {
		t.Fatalf("expected first reservation rolled back to 10, got %d", got)
	}
	if got := productStock(t, db, second.ID); got != 1 {
		t.Fatalf("expected second stock untouched at 1, got %d", got)
	}
}

func TestCheckoutUnknownProduct(t *testing.T) {
	db := newOrderTestDB(t, "order_unknown_product")
	svc := newOrderTestService(db)

	_, err := svc.Checkout(CheckoutInput{
		OwnerID: 1,
		Items:   []CheckoutItem{{ProductID: 404, Quantity: 1}},
	})
	if !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected product not found, got: %v", err)
	}
}

func TestCheckoutFromCartSnapshotsAndClears(t *testing.T) {
	db := newOrderTestDB(t, "order_from_cart")
	orderSvc := newOrderTestService(db)
	cartSvc := newCartTestService(db)
	product := createOrderTestProduct(t, db, "Hybrid Seed", 10, 20)

	if _, err := cartSvc.AddItem(4, product.ID, 3); err != nil {
		t.Fatalf("add to cart failed: %v", err)
	}

	order, err := orderSvc.Checkout(CheckoutInput{
		OwnerID:       4,
		UseCart:       true,
		Street:        "12 Valley Road",
		City:          "Nakuru",
		Phone:         "0712000003",
		PaymentMethod: "card",
	})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if order.IsPaid || order.IsDelivered {
		t.Fatalf("expected new order unpaid and undelivered")
	}
	if order.PaymentMethod != "card" {
		t.Fatalf("expected payment method card, got %s", order.PaymentMethod)
	}
	if len(order.Items) != 1 {
		t.Fatalf("expected one order item, got %d", len(order.Items))
	}
	item := order.Items[0]
	if item.Name != "Hybrid Seed" || item.Quantity != 3 {
		t.Fatalf("unexpected order item: %+v", item)
	}
	if !item.UnitPrice.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("expected unit price 10, got %s", item.UnitPrice.String())
	}
	if got := productStock(t, db, product.ID); got != 17 {
		t.Fatalf("expected stock 17 after reservation, got %d", got)
	}

	view, err := cartSvc.GetCart(4)
	if err != nil {
		t.Fatalf("get cart after checkout failed: %v", err)
	}
	if len(view.Items) != 0 {
		t.Fatalf("expected cart cleared after checkout, got %d items", len(view.Items))
	}

	// A later catalog price change must not reach the snapshot.
	if err := db.Model(&models.Product{}).Where("id = ?", product.ID).
		Update("price", models.NewMoneyFromDecimal(decimal.NewFromInt(99))).Error; err != nil {
		t.Fatalf("update price failed: %v", err)
	}
	reloaded, err := orderSvc.GetOrderForOwner(order.ID, 4)
	if err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if !reloaded.Items[0].UnitPrice.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("expected snapshot price 10 after catalog change, got %s", reloaded.Items[0].UnitPrice.String())
	}

	// The cleared cart accepts the same product again, at the current price.
	view, err = cartSvc.AddItem(4, product.ID, 2)
	if err != nil {
		t.Fatalf("re-add after checkout failed: %v", err)
	}
	if len(view.Items) != 1 || view.Items[0].Quantity != 2 {
		t.Fatalf("unexpected cart after re-add: %+v", view.Items)
	}
	if !view.Items[0].UnitPrice.Equal(decimal.NewFromInt(99)) {
		t.Fatalf("expected fresh snapshot price 99, got %s", view.Items[0].UnitPrice.String())
	}
}

func TestCheckoutLastUnitContention(t *testing.T) {
	db := newOrderTestDB(t, "order_last_unit")
	svc := newOrderTestService(db)
	product := createOrderTestProduct(t, db, "Last Bag", 5, 1)

	if _, err := svc.Checkout(CheckoutInput{
		OwnerID: 1,
		Items:   []CheckoutItem{{ProductID: product.ID, Quantity: 1}},
	}); err != nil {
		t.Fatalf("first checkout failed: %v", err)
	}
	_, err := svc.Checkout(CheckoutInput{
		OwnerID: 2,
		Items:   []CheckoutItem{{ProductID: product.ID, Quantity: 1}},
	})
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected second buyer to lose the last unit, got: %v", err)
	}
	if got := productStock(t, db, product.ID); got != 0 {
		t.Fatalf("expected stock 0, got %d", got)
	}
}

func TestSetPaidFlipsBothWays(t *testing.T) {
	db := newOrderTestDB(t, "order_set_paid")
	svc := newOrderTestService(db)
	product := createOrderTestProduct(t, db, "Seed Pack", 4, 10)

	order, err := svc.Checkout(CheckoutInput{
		OwnerID: 1,
		Items:   []CheckoutItem{{ProductID: product.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	if _, err := svc.SetPaid(999, true); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected order not found, got: %v", err)
	}

	updated, err := svc.SetPaid(order.ID, true)
	if err != nil {
		t.Fatalf("set paid failed: %v", err)
	}
	if !updated.IsPaid || updated.PaidAt == nil {
		t.Fatalf("expected paid with timestamp, got %+v", updated)
	}
	stamp := *updated.PaidAt

	// Repeating the current state changes nothing.
	again, err := svc.SetPaid(order.ID, true)
	if err != nil {
		t.Fatalf("repeat set paid failed: %v", err)
	}
	if again.PaidAt == nil || !again.PaidAt.Equal(stamp) {
		t.Fatalf("expected idempotent timestamp, got %v", again.PaidAt)
	}

	reverted, err := svc.SetPaid(order.ID, false)
	if err != nil {
		t.Fatalf("revert paid failed: %v", err)
	}
	if reverted.IsPaid || reverted.PaidAt != nil {
		t.Fatalf("expected unpaid with nil timestamp, got %+v", reverted)
	}
}

func TestSetDeliveredStampsTimestamp(t *testing.T) {
	db := newOrderTestDB(t, "order_set_delivered")
	svc := newOrderTestService(db)
	product := createOrderTestProduct(t, db, "Oil Bottle", 6, 10)

	order, err := svc.Checkout(CheckoutInput{
		OwnerID: 1,
		Items:   []CheckoutItem{{ProductID: product.ID, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	updated, err := svc.SetDelivered(order.ID, true)
	if err != nil {
		t.Fatalf("set delivered failed: %v", err)
	}
	if !updated.IsDelivered || updated.DeliveredAt == nil {
		t.Fatalf("expected delivered with timestamp, got %+v", updated)
	}
	if updated.IsPaid {
		t.Fatalf("delivery flag must not touch payment state")
	}

	reverted, err := svc.SetDelivered(order.ID, false)
	if err != nil {
		t.Fatalf("revert delivered failed: %v", err)
	}
	if reverted.IsDelivered || reverted.DeliveredAt != nil {
		t.Fatalf("expected undelivered with nil timestamp, got %+v", reverted)
	}
}

func TestCheckoutRejectsBadPaymentMethod(t *testing.T) {
	db := newOrderTestDB(t, "order_bad_payment")
	svc := newOrderTestService(db)
	product := createOrderTestProduct(t, db, "Seedlings", 2, 5)

	_, err := svc.Checkout(CheckoutInput{
		OwnerID:       1,
		Items:         []CheckoutItem{{ProductID: product.ID, Quantity: 1}},
		PaymentMethod: "cheque",
	})
	if !errors.Is(err, ErrInvalidPayment) {
		t.Fatalf("expected invalid payment, got: %v", err)
	}
}

func TestListOrdersByOwnerNewestFirst(t *testing.T) {
	db := newOrderTestDB(t, "order_list")
	svc := newOrderTestService(db)
	product := createOrderTestProduct(t, db, "Bulk Seed", 3, 100)

	var ids []uint
	for i := 0; i < 3; i++ {
		order, err := svc.Checkout(CheckoutInput{
			OwnerID: 6,
			Items:   []CheckoutItem{{ProductID: product.ID, Quantity: 1}},
		})
		if err != nil {
			t.Fatalf("checkout %d failed: %v", i, err)
		}
		ids = append(ids, order.ID)
		// created_at ordering needs distinct timestamps
		time.Sleep(5 * time.Millisecond)
	}

	orders, total, err := svc.ListOrdersByOwner(repository.OrderListFilter{OwnerID: 6, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 3 || len(orders) != 3 {
		t.Fatalf("expected 3 orders, got total=%d len=%d", total, len(orders))
	}
	if orders[0].ID != ids[2] {
		t.Fatalf("expected newest order first, got %d want %d", orders[0].ID, ids[2])
	}
}
