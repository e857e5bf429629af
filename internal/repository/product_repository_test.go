package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/pazar-next/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupProductRepositoryTest(t *testing.T) (*GormProductRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.ProductImage{}); err != nil {
		t.Fatalf("migrate product failed: %v", err)
	}
	return NewProductRepository(db), db
}

func createStockProduct(t *testing.T, repo *GormProductRepository, slug string, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		ShopID:     1,
		CategoryID: 1,
		Slug:       slug,
		Name:       "Stock Product",
		Price:      models.NewMoneyFromDecimal(decimal.NewFromInt(100)),
		Stock:      stock,
		IsActive:   true,
	}
	if err := repo.Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func TestDecrementStockConditional(t *testing.T) {
	repo, db := setupProductRepositoryTest(t)
	product := createStockProduct(t, repo, "stock-conditional", 5)

	affected, err := repo.DecrementStock(product.ID, 3)
	if err != nil {
		t.Fatalf("decrement failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("decrement affected want 1 got %d", affected)
	}

	// 剩余 2，再扣 3 不应命中任何行
	affected, err = repo.DecrementStock(product.ID, 3)
	if err != nil {
		t.Fatalf("decrement over stock failed: %v", err)
	}
	if affected != 0 {
		t.Fatalf("decrement over stock affected want 0 got %d", affected)
	}

	affected, err = repo.DecrementStock(product.ID, 2)
	if err != nil {
		t.Fatalf("decrement exact failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("decrement exact affected want 1 got %d", affected)
	}

	var got models.Product
	if err := db.First(&got, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if got.Stock != 0 {
		t.Fatalf("stock want 0 got %d", got.Stock)
	}
	if got.SoldCount != 5 {
		t.Fatalf("sold_count want 5 got %d", got.SoldCount)
	}
}

func TestRestoreStockMirrorsDecrement(t *testing.T) {
	repo, db := setupProductRepositoryTest(t)
	product := createStockProduct(t, repo, "stock-mirror", 10)

	if _, err := repo.DecrementStock(product.ID, 4); err != nil {
		t.Fatalf("decrement failed: %v", err)
	}
	affected, err := repo.RestoreStock(product.ID, 4)
	if err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("restore affected want 1 got %d", affected)
	}

	var got models.Product
	if err := db.First(&got, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if got.Stock != 10 {
		t.Fatalf("stock want 10 got %d", got.Stock)
	}
	if got.SoldCount != 0 {
		t.Fatalf("sold_count want 0 got %d", got.SoldCount)
	}
}

func TestRestoreStockReachesSoftDeletedProduct(t *testing.T) {
	repo, db := setupProductRepositoryTest(t)
	product := createStockProduct(t, repo, "stock-soft-deleted", 6)

	if _, err := repo.DecrementStock(product.ID, 2); err != nil {
		t.Fatalf("decrement failed: %v", err)
	}
	if err := repo.Delete(product.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	// 软删除后取消订单仍要回补库存
	affected, err := repo.RestoreStock(product.ID, 2)
	if err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("restore affected want 1 got %d", affected)
	}

	var got models.Product
	if err := db.Unscoped().First(&got, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if got.Stock != 6 {
		t.Fatalf("stock want 6 got %d", got.Stock)
	}
}

func TestDecrementStockRejectsInvalidParams(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)
	if _, err := repo.DecrementStock(0, 1); err == nil {
		t.Fatalf("expected error for zero product id")
	}
	if _, err := repo.DecrementStock(1, 0); err == nil {
		t.Fatalf("expected error for zero quantity")
	}
	if _, err := repo.RestoreStock(1, -1); err == nil {
		t.Fatalf("expected error for negative quantity")
	}
}

func TestListFiltersAndSearch(t *testing.T) {
	repo, db := setupProductRepositoryTest(t)
	phone := createStockProduct(t, repo, "list-phone", 5)
	phone.Name = "Smart Phone"
	phone.CategoryID = 2
	if err := db.Save(phone).Error; err != nil {
		t.Fatalf("save product failed: %v", err)
	}
	hidden := createStockProduct(t, repo, "list-hidden", 5)
	if err := db.Model(hidden).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate product failed: %v", err)
	}

	products, total, err := repo.List(ProductListFilter{Page: 1, PageSize: 10, OnlyActive: true})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(products) != 1 || products[0].Slug != "list-phone" {
		t.Fatalf("expected only active product, got total=%d", total)
	}

	_, total, err = repo.List(ProductListFilter{Page: 1, PageSize: 10, Search: "smart"})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if total != 1 {
		t.Fatalf("expected 1 search hit, got %d", total)
	}

	_, total, err = repo.List(ProductListFilter{Page: 1, PageSize: 10, CategoryID: 3})
	if err != nil {
		t.Fatalf("category filter failed: %v", err)
	}
	if total != 0 {
		t.Fatalf("expected no products for unknown category, got %d", total)
	}
}
