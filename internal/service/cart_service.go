package service

import (
	"time"

	"github.com/pazar-next/internal/logger"
	"github.com/pazar-next/internal/models"
	"github.com/pazar-next/internal/repository"

	"github.com/shopspring/decimal"
)

// CartItemDetail 购物车项详情（用于响应）
type CartItemDetail struct {
	ID         uint            `json:"id"`
	ProductID  uint            `json:"product_id"`
	Quantity   int             `json:"quantity"`
	UnitPrice  models.Money    `json:"unit_price"`
	TotalPrice models.Money    `json:"total_price"`
	Product    *models.Product `json:"product"`
}

// CartDetail 购物车详情
type CartDetail struct {
	CartID      uint             `json:"cart_id"`
	Items       []CartItemDetail `json:"items"`
	TotalItems  int              `json:"total_items"`
	TotalAmount models.Money     `json:"total_amount"`
}

// CartService 购物车服务
type CartService struct {
	cartRepo    *repository.GormCartRepository
	productRepo repository.ProductRepository
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo *repository.GormCartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// GetCart 获取用户购物车（不存在时惰性创建）
func (s *CartService) GetCart(userID uint) (*CartDetail, error) {
	cart, err := s.getOrCreateCart(userID)
	if err != nil {
		return nil, err
	}
	items, err := s.cartRepo.ListItems(cart.ID)
	if err != nil {
		return nil, err
	}

	detail := &CartDetail{
		CartID:      cart.ID,
		Items:       make([]CartItemDetail, 0, len(items)),
		TotalAmount: models.NewMoneyFromDecimal(decimal.Zero),
	}
	total := decimal.Zero
	for _, item := range items {
		product := item.Product
		if product == nil || product.ID == 0 {
			p, err := s.productRepo.GetByID(item.ProductID)
			if err != nil {
				return nil, err
			}
			product = p
		}
		// 已下架或已删除的商品从购物车移除
		if product == nil || !product.IsActive {
			if err := s.cartRepo.DeleteItem(cart.ID, item.ID); err != nil {
				logger.Warnw("cart_prune_item_failed", "cart_id", cart.ID, "cart_item_id", item.ID, "error", err)
			}
			continue
		}

		unitPrice := product.EffectivePrice()
		lineTotal := unitPrice.Decimal.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(lineTotal)

		detail.Items = append(detail.Items, CartItemDetail{
			ID:         item.ID,
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			UnitPrice:  unitPrice,
			TotalPrice: models.NewMoneyFromDecimal(lineTotal),
			Product:    product,
		})
		detail.TotalItems += item.Quantity
	}
	detail.TotalAmount = models.NewMoneyFromDecimal(total)
	return detail, nil
}

// AddItem 添加商品到购物车（同商品合并数量）
func (s *CartService) AddItem(userID, productID uint, quantity int) error {
	if userID == 0 || productID == 0 {
		return ErrProductNotAvailable
	}
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil || !product.IsActive {
		return ErrProductNotAvailable
	}

	cart, err := s.getOrCreateCart(userID)
	if err != nil {
		return err
	}

	merged := quantity
	existing, err := s.cartRepo.GetItemByProduct(cart.ID, productID)
	if err != nil {
		return err
	}
	if existing != nil {
		merged += existing.Quantity
	}
	// 合并后数量超出库存时整单拒绝，购物车保持原样
	if merged > product.Stock {
		return ErrInsufficientStock
	}

	now := time.Now()
	item := &models.CartItem{
		CartID:    cart.ID,
		ProductID: productID,
		Quantity:  merged,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return s.cartRepo.Upsert(item)
}

// UpdateItem 更新购物车项数量（数量归零时移除）
func (s *CartService) UpdateItem(userID, itemID uint, quantity int) error {
	cart, err := s.getOrCreateCart(userID)
	if err != nil {
		return err
	}
	item, err := s.cartRepo.GetItemByID(cart.ID, itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrCartItemNotFound
	}
	if quantity <= 0 {
		return s.cartRepo.DeleteItem(cart.ID, item.ID)
	}

	product := item.Product
	if product == nil || product.ID == 0 {
		p, err := s.productRepo.GetByID(item.ProductID)
		if err != nil {
			return err
		}
		product = p
	}
	if product == nil || !product.IsActive {
		return ErrProductNotAvailable
	}
	if quantity > product.Stock {
		return ErrInsufficientStock
	}

	item.Quantity = quantity
	item.UpdatedAt = time.Now()
	return s.cartRepo.Upsert(&models.CartItem{
		CartID:    cart.ID,
		ProductID: item.ProductID,
		Quantity:  quantity,
		UpdatedAt: item.UpdatedAt,
	})
}

// RemoveItem 删除购物车项
func (s *CartService) RemoveItem(userID, itemID uint) error {
	cart, err := s.getOrCreateCart(userID)
	if err != nil {
		return err
	}
	item, err := s.cartRepo.GetItemByID(cart.ID, itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrCartItemNotFound
	}
	return s.cartRepo.DeleteItem(cart.ID, item.ID)
}

// Clear 清空购物车
func (s *CartService) Clear(userID uint) error {
	cart, err := s.getOrCreateCart(userID)
	if err != nil {
		return err
	}
	return s.cartRepo.ClearByCart(cart.ID)
}

func (s *CartService) getOrCreateCart(userID uint) (*models.Cart, error) {
	if userID == 0 {
		return nil, ErrNotFound
	}
	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}
	if cart != nil {
		return cart, nil
	}
	cart = &models.Cart{UserID: userID}
	if err := s.cartRepo.Create(cart); err != nil {
		return nil, err
	}
	return cart, nil
}
