package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/pazar-next/internal/constants"
	"github.com/pazar-next/internal/logger"
	"github.com/pazar-next/internal/models"
	"github.com/pazar-next/internal/queue"
	"github.com/pazar-next/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderService 订单服务
type OrderService struct {
	orderRepo   *repository.GormOrderRepository
	productRepo repository.ProductRepository
	cartRepo    *repository.GormCartRepository
	shopRepo    *repository.GormShopRepository
	paymentRepo *repository.GormPaymentRepository
	queueClient *queue.Client
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo *repository.GormOrderRepository, productRepo repository.ProductRepository, cartRepo *repository.GormCartRepository, shopRepo *repository.GormShopRepository, paymentRepo *repository.GormPaymentRepository, queueClient *queue.Client) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		cartRepo:    cartRepo,
		shopRepo:    shopRepo,
		paymentRepo: paymentRepo,
		queueClient: queueClient,
	}
}

// 订单状态只允许单向推进，Pending/Confirmed 可取消
var allowedTransitions = map[string]map[string]bool{
	constants.OrderStatusPending: {
		constants.OrderStatusConfirmed: true,
		constants.OrderStatusCancelled: true,
	},
	constants.OrderStatusConfirmed: {
		constants.OrderStatusProcessing: true,
		constants.OrderStatusCancelled:  true,
	},
	constants.OrderStatusProcessing: {
		constants.OrderStatusShipped: true,
	},
	constants.OrderStatusShipped: {
		constants.OrderStatusDelivered: true,
	},
	constants.OrderStatusDelivered: {
		constants.OrderStatusRefunded: true,
	},
}

// CreateOrderInput 创建订单输入
type CreateOrderInput struct {
	UserID          uint
	ShippingAddress string
	ShippingCity    string
	ShippingZipCode string
	ShippingCountry string
	CustomerPhone   string
	Notes           string
	PaymentMethod   string
}

// CreateOrder 从购物车结算创建订单
// 扣库存、建订单、建支付、清空购物车在同一事务内完成。
func (s *OrderService) CreateOrder(input CreateOrderInput) (*models.Order, error) {
	if input.UserID == 0 {
		return nil, ErrNotFound
	}
	if strings.TrimSpace(input.ShippingAddress) == "" {
		return nil, ErrShippingRequired
	}
	method := strings.ToLower(strings.TrimSpace(input.PaymentMethod))
	if !isPaymentMethodSupported(method) {
		return nil, ErrPaymentMethodInvalid
	}

	cart, err := s.cartRepo.GetByUser(input.UserID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartEmpty
	}
	cartItems, err := s.cartRepo.ListItems(cart.ID)
	if err != nil {
		return nil, err
	}
	if len(cartItems) == 0 {
		return nil, ErrCartEmpty
	}

	now := time.Now()
	var order *models.Order
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		productRepo := s.productRepo.WithTx(tx)
		cartRepo := s.cartRepo.WithTx(tx)
		shopRepo := s.shopRepo.WithTx(tx)
		paymentRepo := s.paymentRepo.WithTx(tx)

		total := decimal.Zero
		orderItems := make([]models.OrderItem, 0, len(cartItems))
		shopQuantities := map[uint]int{}

		for _, cartItem := range cartItems {
			product, err := productRepo.GetByID(cartItem.ProductID)
			if err != nil {
				return err
			}
			if product == nil || !product.IsActive {
				return ErrProductNotAvailable
			}

			// 条件更新扣库存，避免并发下超卖
			affected, err := productRepo.DecrementStock(product.ID, cartItem.Quantity)
			if err != nil {
				return err
			}
			if affected == 0 {
				// 立即失败并带上第一个库存不足的商品名
				return fmt.Errorf("%w for %s", ErrInsufficientStock, product.Name)
			}

			unitPrice := product.EffectivePrice()
			lineTotal := unitPrice.Decimal.Mul(decimal.NewFromInt(int64(cartItem.Quantity)))
			total = total.Add(lineTotal)

			orderItems = append(orderItems, models.OrderItem{
				ProductID:   product.ID,
				ProductName: product.Name,
				UnitPrice:   unitPrice,
				Quantity:    cartItem.Quantity,
				TotalPrice:  models.NewMoneyFromDecimal(lineTotal),
				CreatedAt:   now,
				UpdatedAt:   now,
			})
			shopQuantities[product.ShopID] += cartItem.Quantity
		}

		commission := total.Mul(decimal.RequireFromString(constants.PlatformCommissionRate))

		order = &models.Order{
			OrderNo:          generateOrderNo(),
			UserID:           input.UserID,
			Status:           constants.OrderStatusPending,
			TotalAmount:      models.NewMoneyFromDecimal(total),
			CommissionAmount: models.NewMoneyFromDecimal(commission),
			ShippingAddress:  strings.TrimSpace(input.ShippingAddress),
			ShippingCity:     strings.TrimSpace(input.ShippingCity),
			ShippingZipCode:  strings.TrimSpace(input.ShippingZipCode),
			ShippingCountry:  strings.TrimSpace(input.ShippingCountry),
			CustomerPhone:    strings.TrimSpace(input.CustomerPhone),
			Notes:            strings.TrimSpace(input.Notes),
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if err := orderRepo.Create(order, orderItems); err != nil {
			return err
		}
		order.Items = orderItems

		paidAt := now
		payment := &models.Payment{
			OrderID:       order.ID,
			Method:        method,
			Amount:        order.TotalAmount,
			Status:        constants.PaymentStatusCompleted,
			TransactionNo: uuid.NewString(),
			PaidAt:        &paidAt,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := paymentRepo.Create(payment); err != nil {
			return err
		}
		order.Payment = payment

		for shopID, quantity := range shopQuantities {
			if err := shopRepo.IncrementTotalSales(shopID, quantity); err != nil {
				return err
			}
		}

		return cartRepo.ClearByCart(cart.ID)
	})
	if err != nil {
		return nil, err
	}

	s.notifyOrderStatus(order.ID, order.Status)
	return order, nil
}

// CancelOrder 取消订单并回补库存
// 仅 Pending / Confirmed 状态可取消。
func (s *OrderService) CancelOrder(userID, orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	if !canCancel(order.Status) {
		return nil, ErrOrderCannotCancel
	}

	now := time.Now()
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		productRepo := s.productRepo.WithTx(tx)
		paymentRepo := s.paymentRepo.WithTx(tx)

		updates := map[string]interface{}{
			"cancelled_at": now,
			"updated_at":   now,
		}
		// 条件更新防止并发取消重复回补库存
		affected, err := orderRepo.UpdateStatusFrom(order.ID,
			[]string{constants.OrderStatusPending, constants.OrderStatusConfirmed},
			constants.OrderStatusCancelled, updates)
		if err != nil {
			return ErrOrderUpdateFailed
		}
		if affected == 0 {
			return ErrOrderCannotCancel
		}

		for _, item := range order.Items {
			if _, err := productRepo.RestoreStock(item.ProductID, item.Quantity); err != nil {
				return err
			}
		}

		payment, err := paymentRepo.GetByOrderID(order.ID)
		if err != nil {
			return err
		}
		if payment != nil && payment.Status == constants.PaymentStatusCompleted {
			if err := paymentRepo.UpdateStatus(payment.ID, constants.PaymentStatusRefunded, map[string]interface{}{
				"updated_at": now,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	order.Status = constants.OrderStatusCancelled
	order.CancelledAt = &now
	s.notifyOrderStatus(order.ID, order.Status)
	return order, nil
}

// Transition 推进订单状态（管理端/履约流程使用）
func (s *OrderService) Transition(orderID uint, target string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	target = strings.ToLower(strings.TrimSpace(target))
	if !allowedTransitions[order.Status][target] {
		return nil, ErrOrderUpdateFailed
	}
	if target == constants.OrderStatusCancelled {
		return s.CancelOrder(order.UserID, order.ID)
	}

	now := time.Now()
	if err := s.orderRepo.UpdateStatus(order.ID, target, map[string]interface{}{"updated_at": now}); err != nil {
		return nil, ErrOrderUpdateFailed
	}
	order.Status = target
	s.notifyOrderStatus(order.ID, target)
	return order, nil
}

// ListByUser 用户订单列表
func (s *OrderService) ListByUser(userID uint, page, pageSize int, status string) ([]models.Order, int64, error) {
	if userID == 0 {
		return nil, 0, ErrNotFound
	}
	return s.orderRepo.ListByUser(repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   userID,
		Status:   strings.ToLower(strings.TrimSpace(status)),
	})
}

// GetByIDAndUser 用户订单详情
func (s *OrderService) GetByIDAndUser(orderID, userID uint) (*models.Order, error) {
	if orderID == 0 || userID == 0 {
		return nil, nil
	}
	return s.orderRepo.GetByIDAndUser(orderID, userID)
}

func (s *OrderService) notifyOrderStatus(orderID uint, status string) {
	if s.queueClient == nil || !s.queueClient.Enabled() {
		return
	}
	if err := s.queueClient.EnqueueOrderStatusEmail(queue.OrderStatusEmailPayload{
		OrderID: orderID,
		Status:  status,
	}); err != nil {
		logger.Warnw("order_status_email_enqueue_failed", "order_id", orderID, "status", status, "error", err)
	}
}

func canCancel(status string) bool {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case constants.OrderStatusPending, constants.OrderStatusConfirmed:
		return true
	default:
		return false
	}
}

func isPaymentMethodSupported(method string) bool {
	switch method {
	case constants.PaymentMethodCreditCard,
		constants.PaymentMethodDebitCard,
		constants.PaymentMethodBankTransfer,
		constants.PaymentMethodCashOnDelivery:
		return true
	default:
		return false
	}
}

func generateOrderNo() string {
	date := time.Now().UTC().Format("20060102")
	random := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("ORD-%s-%s", date, random)
}
