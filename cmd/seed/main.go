package main

import (
	"fmt"

	"github.com/pazar-next/internal/config"
	"github.com/pazar-next/internal/constants"
	"github.com/pazar-next/internal/logger"
	"github.com/pazar-next/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// 连接数据库
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

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加分类
	categories := []models.Category{
		{Slug: "electronics", Name: "Electronics", Description: "Phones, audio and smart devices", SortOrder: 300},
		{Slug: "lifestyle", Name: "Lifestyle", Description: "Everyday home and travel goods", SortOrder: 200},
		{Slug: "accessories", Name: "Accessories", Description: "Chargers, cases and add-ons", SortOrder: 100},
	}

	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("slug = ?", cat.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", cat.Slug, err)
			} else {
				stdLog.Printf("Created category: %s", cat.Slug)
			}
		} else {
			stdLog.Printf("Category already exists: %s", cat.Slug)
		}
	}

	categoryIDs := map[string]uint{}
	var categoryList []models.Category
	if err := models.DB.Where("slug IN ?", []string{"electronics", "lifestyle", "accessories"}).Find(&categoryList).Error; err != nil {
		stdLog.Printf("Failed to load categories: %v", err)
	}
	for _, cat := range categoryList {
		categoryIDs[cat.Slug] = cat.ID
	}

	// 添加演示卖家与店铺
	seller := seedUser(stdLog, models.User{
		Email:     "seller@pazar.dev",
		FirstName: "Deniz",
		LastName:  "Aksoy",
		Role:      constants.RoleSeller,
		Status:    constants.UserStatusActive,
	}, "Seller123!")
	customer := seedUser(stdLog, models.User{
		Email:     "customer@pazar.dev",
		FirstName: "Mert",
		LastName:  "Yilmaz",
		Role:      constants.RoleCustomer,
		Status:    constants.UserStatusActive,
	}, "Customer123!")
	if customer != nil {
		var cart models.Cart
		if err := models.DB.Where("user_id = ?", customer.ID).First(&cart).Error; err != nil {
			if err := models.DB.Create(&models.Cart{UserID: customer.ID}).Error; err != nil {
				stdLog.Printf("Failed to create customer cart: %v", err)
			}
		}
	}

	var shop *models.Shop
	if seller != nil {
		var existing models.Shop
		if err := models.DB.Where("user_id = ?", seller.ID).First(&existing).Error; err != nil {
			created := models.Shop{
				UserID:      seller.ID,
				Name:        "Deniz's Shop",
				Slug:        "deniz-shop-seed",
				Description: "Demo shop seeded for local development",
				IsVerified:  true,
			}
			if err := models.DB.Create(&created).Error; err != nil {
				stdLog.Printf("Failed to create shop: %v", err)
			} else {
				stdLog.Printf("Created shop: %s", created.Slug)
				shop = &created
			}
		} else {
			shop = &existing
		}
	}

	if shop == nil {
		stdLog.Fatalf("shop not available, aborting product seed")
	}

	// 添加商品
	discount := models.NewMoneyFromDecimal(decimal.NewFromFloat(79.99))
	products := []models.Product{
		{
			ShopID:      shop.ID,
			CategoryID:  categoryIDs["electronics"],
			Slug:        "wireless-earphones-seed",
			Name:        "Wireless Bluetooth Earphones",
			Description: "High quality sound, long battery life, comfortable to wear",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(99.99)),
			Stock:       40,
			IsActive:    true,
			IsFeatured:  true,
			Images: []models.ProductImage{
				{URL: "https://images.unsplash.com/photo-1590658268037-6bf12165a8df?w=800", IsPrimary: true},
			},
		},
		{
			ShopID:        shop.ID,
			CategoryID:    categoryIDs["electronics"],
			Slug:          "smart-watch-seed",
			Name:          "Smart Watch",
			Description:   "Health monitoring, fitness tracking, message notifications",
			Price:         models.NewMoneyFromDecimal(decimal.NewFromFloat(199.99)),
			DiscountPrice: nil,
			Stock:         25,
			IsActive:      true,
			Images: []models.ProductImage{
				{URL: "https://images.unsplash.com/photo-1579586337278-3befd40fd17a?w=800", IsPrimary: true},
			},
		},
		{
			ShopID:        shop.ID,
			CategoryID:    categoryIDs["lifestyle"],
			Slug:          "backpack-seed",
			Name:          "Multi-function Backpack",
			Description:   "Large capacity, waterproof and anti-theft, USB charging port",
			Price:         models.NewMoneyFromDecimal(decimal.NewFromFloat(89.99)),
			DiscountPrice: &discount,
			Stock:         60,
			IsActive:      true,
			Images: []models.ProductImage{
				{URL: "https://images.unsplash.com/photo-1553062407-98eeb64c6a62?w=800", IsPrimary: true},
			},
		},
		{
			ShopID:      shop.ID,
			CategoryID:  categoryIDs["accessories"],
			Slug:        "power-bank-seed",
			Name:        "Portable Power Bank",
			Description: "High capacity, fast charging, multi-device compatible",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(49.99)),
			Stock:       0,
			IsActive:    true,
			Images: []models.ProductImage{
				{URL: "https://images.unsplash.com/photo-1609091839311-d5365f9ff1c5?w=800", IsPrimary: true},
			},
		},
	}

	for _, prod := range products {
		if prod.CategoryID == 0 {
			stdLog.Printf("Skip product %s: category_id missing", prod.Slug)
			continue
		}
		var existing models.Product
		if err := models.DB.Where("slug = ?", prod.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&prod).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", prod.Slug, err)
			} else {
				stdLog.Printf("Created product: %s", prod.Slug)
			}
		} else {
			existing.Name = prod.Name
			existing.Description = prod.Description
			existing.Price = prod.Price
			existing.DiscountPrice = prod.DiscountPrice
			existing.CategoryID = prod.CategoryID
			existing.Stock = prod.Stock
			existing.IsActive = prod.IsActive
			existing.IsFeatured = prod.IsFeatured
			if err := models.DB.Save(&existing).Error; err != nil {
				stdLog.Printf("Failed to update product %s: %v", prod.Slug, err)
			} else {
				stdLog.Printf("Updated product: %s", prod.Slug)
			}
		}
	}

	fmt.Println("\n✅ Seed data created successfully!")
	fmt.Println("Summary:")
	fmt.Println("- 3 Categories")
	fmt.Println("- 1 Seller (seller@pazar.dev) with shop")
	fmt.Println("- 1 Customer (customer@pazar.dev) with cart")
	fmt.Println("- 4 Products (one out of stock for demo)")
}

func seedUser(stdLog interface{ Printf(string, ...interface{}) }, user models.User, password string) *models.User {
	var existing models.User
	if err := models.DB.Where("email = ?", user.Email).First(&existing).Error; err == nil {
		stdLog.Printf("User already exists: %s", user.Email)
		return &existing
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		stdLog.Printf("Failed to hash password for %s: %v", user.Email, err)
		return nil
	}
	user.PasswordHash = string(hash)
	if err := models.DB.Create(&user).Error; err != nil {
		stdLog.Printf("Failed to create user %s: %v", user.Email, err)
		return nil
	}
	stdLog.Printf("Created user: %s", user.Email)
	return &user
}
