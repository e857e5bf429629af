package service

import (
	"errors"
	"testing"

	"github.com/pazar-next/internal/constants"
	"github.com/pazar-next/internal/models"

	"github.com/shopspring/decimal"
)

func TestAddItemMergesQuantity(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newTestCartService(db)

	seller := seedTestUser(t, db, "seller@example.com", constants.RoleSeller)
	shop := seedTestShop(t, db, seller.ID)
	category := seedTestCategory(t, db)
	product := seedTestProduct(t, db, shop.ID, category.ID, "25.00", 10)
	customer := seedTestUser(t, db, "customer@example.com", constants.RoleCustomer)

	if err := svc.AddItem(customer.ID, product.ID, 2); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if err := svc.AddItem(customer.ID, product.ID, 3); err != nil {
		t.Fatalf("AddItem merge failed: %v", err)
	}

	detail, err := svc.GetCart(customer.ID)
	if err != nil {
		t.Fatalf("GetCart failed: %v", err)
	}
	if len(detail.Items) != 1 {
		t.Fatalf("expected 1 merged item, got %d", len(detail.Items))
	}
	if detail.Items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", detail.Items[0].Quantity)
	}
	if !detail.TotalAmount.Decimal.Equal(decimal.RequireFromString("125.00")) {
		t.Fatalf("expected total 125.00, got %s", detail.TotalAmount.Decimal)
	}
}

func TestAddItemMergedOverStockLeavesCartUnchanged(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newTestCartService(db)

	seller := seedTestUser(t, db, "seller@example.com", constants.RoleSeller)
	shop := seedTestShop(t, db, seller.ID)
	category := seedTestCategory(t, db)
	product := seedTestProduct(t, db, shop.ID, category.ID, "25.00", 5)
	customer := seedTestUser(t, db, "customer@example.com", constants.RoleCustomer)

	if err := svc.AddItem(customer.ID, product.ID, 4); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	// 合并后 4+2 > 5，整单拒绝
	if err := svc.AddItem(customer.ID, product.ID, 2); !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}

	detail, err := svc.GetCart(customer.ID)
	if err != nil {
		t.Fatalf("GetCart failed: %v", err)
	}
	if len(detail.Items) != 1 || detail.Items[0].Quantity != 4 {
		t.Fatalf("expected cart unchanged at quantity 4, got %+v", detail.Items)
	}
}

func TestAddItemValidation(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newTestCartService(db)

	seller := seedTestUser(t, db, "seller@example.com", constants.RoleSeller)
	shop := seedTestShop(t, db, seller.ID)
	category := seedTestCategory(t, db)
	inactive := seedTestProduct(t, db, shop.ID, category.ID, "25.00", 5)
	if err := db.Model(inactive).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate product failed: %v", err)
	}
	customer := seedTestUser(t, db, "customer@example.com", constants.RoleCustomer)

	if err := svc.AddItem(customer.ID, inactive.ID, 1); !errors.Is(err, ErrProductNotAvailable) {
		t.Fatalf("expected ErrProductNotAvailable for inactive product, got %v", err)
	}
	if err := svc.AddItem(customer.ID, 999, 1); !errors.Is(err, ErrProductNotAvailable) {
		t.Fatalf("expected ErrProductNotAvailable for missing product, got %v", err)
	}
	active := seedTestProduct(t, db, shop.ID, category.ID, "25.00", 5)
	if err := svc.AddItem(customer.ID, active.ID, 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
}

func TestGetCartUsesDiscountPriceAndPrunesInactive(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newTestCartService(db)

	seller := seedTestUser(t, db, "seller@example.com", constants.RoleSeller)
	shop := seedTestShop(t, db, seller.ID)
	category := seedTestCategory(t, db)
	discounted := seedTestProduct(t, db, shop.ID, category.ID, "80.00", 10)
	dp := models.NewMoneyFromDecimal(decimal.RequireFromString("60.00"))
	discounted.DiscountPrice = &dp
	if err := db.Save(discounted).Error; err != nil {
		t.Fatalf("save product failed: %v", err)
	}
	doomed := seedTestProduct(t, db, shop.ID, category.ID, "15.00", 10)
	customer := seedTestUser(t, db, "customer@example.com", constants.RoleCustomer)

	if err := svc.AddItem(customer.ID, discounted.ID, 2); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if err := svc.AddItem(customer.ID, doomed.ID, 1); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	// 下架后购物车应自动移除该商品
	if err := db.Model(doomed).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate product failed: %v", err)
	}

	detail, err := svc.GetCart(customer.ID)
	if err != nil {
		t.Fatalf("GetCart failed: %v", err)
	}
	if len(detail.Items) != 1 {
		t.Fatalf("expected inactive product pruned, got %d items", len(detail.Items))
	}
	if !detail.Items[0].UnitPrice.Decimal.Equal(decimal.RequireFromString("60.00")) {
		t.Fatalf("expected discount unit price 60.00, got %s", detail.Items[0].UnitPrice.Decimal)
	}
	if !detail.TotalAmount.Decimal.Equal(decimal.RequireFromString("120.00")) {
		t.Fatalf("expected total 120.00, got %s", detail.TotalAmount.Decimal)
	}
	if detail.TotalItems != 2 {
		t.Fatalf("expected total_items 2, got %d", detail.TotalItems)
	}
}

func TestUpdateItemQuantity(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newTestCartService(db)

	seller := seedTestUser(t, db, "seller@example.com", constants.RoleSeller)
	shop := seedTestShop(t, db, seller.ID)
	category := seedTestCategory(t, db)
	product := seedTestProduct(t, db, shop.ID, category.ID, "25.00", 5)
	customer := seedTestUser(t, db, "customer@example.com", constants.RoleCustomer)

	if err := svc.AddItem(customer.ID, product.ID, 2); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	detail, err := svc.GetCart(customer.ID)
	if err != nil {
		t.Fatalf("GetCart failed: %v", err)
	}
	itemID := detail.Items[0].ID

	if err := svc.UpdateItem(customer.ID, itemID, 9); !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	if err := svc.UpdateItem(customer.ID, itemID, 3); err != nil {
		t.Fatalf("UpdateItem failed: %v", err)
	}
	detail, err = svc.GetCart(customer.ID)
	if err != nil {
		t.Fatalf("GetCart failed: %v", err)
	}
	if detail.Items[0].Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", detail.Items[0].Quantity)
	}

	// 数量归零即移除
	if err := svc.UpdateItem(customer.ID, itemID, 0); err != nil {
		t.Fatalf("UpdateItem to zero failed: %v", err)
	}
	detail, err = svc.GetCart(customer.ID)
	if err != nil {
		t.Fatalf("GetCart failed: %v", err)
	}
	if len(detail.Items) != 0 {
		t.Fatalf("expected empty cart, got %d items", len(detail.Items))
	}

	if err := svc.UpdateItem(customer.ID, 12345, 1); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("expected ErrCartItemNotFound, got %v", err)
	}
}

func TestRemoveItemAndClear(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newTestCartService(db)

	seller := seedTestUser(t, db, "seller@example.com", constants.RoleSeller)
	shop := seedTestShop(t, db, seller.ID)
	category := seedTestCategory(t, db)
	first := seedTestProduct(t, db, shop.ID, category.ID, "25.00", 5)
	second := seedTestProduct(t, db, shop.ID, category.ID, "30.00", 5)
	customer := seedTestUser(t, db, "customer@example.com", constants.RoleCustomer)

	if err := svc.AddItem(customer.ID, first.ID, 1); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if err := svc.AddItem(customer.ID, second.ID, 1); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	if err := svc.RemoveItem(customer.ID, 999); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("expected ErrCartItemNotFound, got %v", err)
	}

	detail, err := svc.GetCart(customer.ID)
	if err != nil {
		t.Fatalf("GetCart failed: %v", err)
	}
	if err := svc.RemoveItem(customer.ID, detail.Items[0].ID); err != nil {
		t.Fatalf("RemoveItem failed: %v", err)
	}
	if err := svc.Clear(customer.ID); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	detail, err = svc.GetCart(customer.ID)
	if err != nil {
		t.Fatalf("GetCart failed: %v", err)
	}
	if len(detail.Items) != 0 {
		t.Fatalf("expected empty cart, got %d items", len(detail.Items))
	}
}
