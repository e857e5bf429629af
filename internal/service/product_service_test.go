package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/pazar-next/internal/constants"
	"github.com/pazar-next/internal/models"
	"github.com/pazar-next/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newTestProductService(db *gorm.DB) *ProductService {
	return NewProductService(
		repository.NewProductRepository(db),
		repository.NewShopRepository(db),
		repository.NewCategoryRepository(db),
	)
}

func money(t *testing.T, value string) models.Money {
	t.Helper()
	return models.NewMoneyFromDecimal(decimal.RequireFromString(value))
}

func TestCreateProduct(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newTestProductService(db)

	seller := seedTestUser(t, db, "seller@example.com", constants.RoleSeller)
	shop := seedTestShop(t, db, seller.ID)
	category := seedTestCategory(t, db)

	discount := money(t, "79.99")
	product, err := svc.Create(seller.ID, CreateProductInput{
		CategoryID:    category.ID,
		Name:          "Kablosuz Kulaklık",
		Price:         money(t, "99.99"),
		DiscountPrice: &discount,
		Stock:         10,
		ImageURLs:     []string{"https://cdn.example.com/a.jpg", " ", "https://cdn.example.com/b.jpg"},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if product.ShopID != shop.ID {
		t.Fatalf("expected shop %d, got %d", shop.ID, product.ShopID)
	}
	if !strings.HasPrefix(product.Slug, "kablosuz-kulaklik-") {
		t.Fatalf("unexpected slug: %s", product.Slug)
	}
	if len(product.Images) != 2 || !product.Images[0].IsPrimary || product.Images[1].IsPrimary {
		t.Fatalf("expected first image primary, got %+v", product.Images)
	}
	if !product.IsActive {
		t.Fatalf("expected product active by default")
	}
}

func TestCreateProductValidation(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newTestProductService(db)

	seller := seedTestUser(t, db, "seller@example.com", constants.RoleSeller)
	seedTestShop(t, db, seller.ID)
	category := seedTestCategory(t, db)
	customer := seedTestUser(t, db, "customer@example.com", constants.RoleCustomer)

	// 无店铺的用户不能发布商品
	if _, err := svc.Create(customer.ID, CreateProductInput{CategoryID: category.ID, Name: "X", Price: money(t, "10.00")}); !errors.Is(err, ErrShopRequired) {
		t.Fatalf("expected ErrShopRequired, got %v", err)
	}
	if _, err := svc.Create(seller.ID, CreateProductInput{CategoryID: category.ID, Name: "X", Price: money(t, "0")}); !errors.Is(err, ErrInvalidPrice) {
		t.Fatalf("expected ErrInvalidPrice, got %v", err)
	}
	over := money(t, "20.00")
	if _, err := svc.Create(seller.ID, CreateProductInput{CategoryID: category.ID, Name: "X", Price: money(t, "10.00"), DiscountPrice: &over}); !errors.Is(err, ErrDiscountExceedsPrice) {
		t.Fatalf("expected ErrDiscountExceedsPrice, got %v", err)
	}
	if _, err := svc.Create(seller.ID, CreateProductInput{CategoryID: category.ID, Name: "X", Price: money(t, "10.00"), Stock: -1}); !errors.Is(err, ErrInvalidStock) {
		t.Fatalf("expected ErrInvalidStock, got %v", err)
	}
	if _, err := svc.Create(seller.ID, CreateProductInput{CategoryID: 999, Name: "X", Price: money(t, "10.00")}); !errors.Is(err, ErrCategoryInvalid) {
		t.Fatalf("expected ErrCategoryInvalid, got %v", err)
	}
}

func TestUpdateProductKeepsSlug(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newTestProductService(db)

	seller := seedTestUser(t, db, "seller@example.com", constants.RoleSeller)
	shop := seedTestShop(t, db, seller.ID)
	category := seedTestCategory(t, db)
	product := seedTestProduct(t, db, shop.ID, category.ID, "50.00", 5)

	newName := "Yeni İsim"
	updated, err := svc.Update(seller.ID, product.ID, UpdateProductInput{Name: &newName})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Name != "Yeni İsim" {
		t.Fatalf("expected renamed product, got %s", updated.Name)
	}
	// slug 在创建时固定
	if updated.Slug != product.Slug {
		t.Fatalf("slug changed on rename: %s -> %s", product.Slug, updated.Slug)
	}

	dp := money(t, "40.00")
	if _, err := svc.Update(seller.ID, product.ID, UpdateProductInput{DiscountPrice: &dp}); err != nil {
		t.Fatalf("Update discount failed: %v", err)
	}
	updated, err = svc.Update(seller.ID, product.ID, UpdateProductInput{ClearDiscount: true})
	if err != nil {
		t.Fatalf("Update clear discount failed: %v", err)
	}
	if updated.DiscountPrice != nil {
		t.Fatalf("expected discount cleared")
	}
}

func TestUpdateProductOwnership(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newTestProductService(db)

	owner := seedTestUser(t, db, "owner@example.com", constants.RoleSeller)
	ownerShop := seedTestShop(t, db, owner.ID)
	other := seedTestUser(t, db, "other@example.com", constants.RoleSeller)
	seedTestShop(t, db, other.ID)
	category := seedTestCategory(t, db)
	product := seedTestProduct(t, db, ownerShop.ID, category.ID, "50.00", 5)

	name := "Hijack"
	if _, err := svc.Update(other.ID, product.ID, UpdateProductInput{Name: &name}); !errors.Is(err, ErrNotProductOwner) {
		t.Fatalf("expected ErrNotProductOwner, got %v", err)
	}

	missing, err := svc.Update(owner.ID, 999, UpdateProductInput{Name: &name})
	if err != nil {
		t.Fatalf("Update missing product errored: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil product for missing id")
	}
}

func TestDeleteProduct(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newTestProductService(db)

	owner := seedTestUser(t, db, "owner@example.com", constants.RoleSeller)
	ownerShop := seedTestShop(t, db, owner.ID)
	other := seedTestUser(t, db, "other@example.com", constants.RoleSeller)
	seedTestShop(t, db, other.ID)
	admin := seedTestUser(t, db, "admin@example.com", constants.RoleAdmin)
	category := seedTestCategory(t, db)

	product := seedTestProduct(t, db, ownerShop.ID, category.ID, "50.00", 5)
	if _, err := svc.Delete(other.ID, constants.RoleSeller, product.ID); !errors.Is(err, ErrNotProductOwner) {
		t.Fatalf("expected ErrNotProductOwner, got %v", err)
	}
	deleted, err := svc.Delete(owner.ID, constants.RoleSeller, product.ID)
	if err != nil || !deleted {
		t.Fatalf("owner delete failed: deleted=%v err=%v", deleted, err)
	}

	// 软删除后公开查询不可见
	got, err := svc.GetByID(product.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got != nil {
		t.Fatalf("expected soft-deleted product hidden")
	}

	// 管理员可删除任意店铺的商品
	another := seedTestProduct(t, db, ownerShop.ID, category.ID, "60.00", 5)
	deleted, err = svc.Delete(admin.ID, constants.RoleAdmin, another.ID)
	if err != nil || !deleted {
		t.Fatalf("admin delete failed: deleted=%v err=%v", deleted, err)
	}

	deleted, err = svc.Delete(owner.ID, constants.RoleSeller, 999)
	if err != nil {
		t.Fatalf("delete missing product errored: %v", err)
	}
	if deleted {
		t.Fatalf("expected deleted=false for missing product")
	}
}

func TestGetByIDIncrementsViewCount(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newTestProductService(db)

	seller := seedTestUser(t, db, "seller@example.com", constants.RoleSeller)
	shop := seedTestShop(t, db, seller.ID)
	category := seedTestCategory(t, db)
	product := seedTestProduct(t, db, shop.ID, category.ID, "50.00", 5)

	got, err := svc.GetByID(product.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.ViewCount != 1 {
		t.Fatalf("expected view count 1, got %d", got.ViewCount)
	}
	bySlug, err := svc.GetBySlug(product.Slug)
	if err != nil {
		t.Fatalf("GetBySlug failed: %v", err)
	}
	if bySlug.ViewCount != 2 {
		t.Fatalf("expected view count 2, got %d", bySlug.ViewCount)
	}
}

func TestListPublicFilters(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newTestProductService(db)

	seller := seedTestUser(t, db, "seller@example.com", constants.RoleSeller)
	shop := seedTestShop(t, db, seller.ID)
	category := seedTestCategory(t, db)
	otherCategory := seedTestCategory(t, db)

	visible := seedTestProduct(t, db, shop.ID, category.ID, "10.00", 5)
	hidden := seedTestProduct(t, db, shop.ID, otherCategory.ID, "20.00", 5)
	if err := db.Model(hidden).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate product failed: %v", err)
	}

	products, total, err := svc.ListPublic(ProductListInput{Page: 1, PageSize: 20})
	if err != nil {
		t.Fatalf("ListPublic failed: %v", err)
	}
	if total != 1 || len(products) != 1 || products[0].ID != visible.ID {
		t.Fatalf("expected only active product, got total=%d", total)
	}

	_, total, err = svc.ListPublic(ProductListInput{Page: 1, PageSize: 20, CategoryID: otherCategory.ID})
	if err != nil {
		t.Fatalf("ListPublic failed: %v", err)
	}
	if total != 0 {
		t.Fatalf("expected no products in category filter, got %d", total)
	}
}
