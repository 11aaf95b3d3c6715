package service

import (
	"context"
	"crypto/rand"
	"errors"
	"time"

	"github.com/inkstream/inkstream-go/internal/model"
	"github.com/inkstream/inkstream-go/internal/repository"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrSelfSubscribe = errors.New("cannot subscribe yourself")
)

// SubscriptionAmount is the flat monthly subscription price in TWD.
const SubscriptionAmount = 150

const orderNoCharset = "0123456789abcdefghijklmnopqrstuvwxyz"

// OrderStore is the slice of the order repository the order flows need.
type OrderStore interface {
	Create(ctx context.Context, order *model.Order) error
	GetByUserAndOrderNo(ctx context.Context, userID, orderNo string) (*model.Order, error)
	MarkPaid(ctx context.Context, orderNo string, payment model.Payment) error
}

// OrderService handles subscription orders and their settlement.
type OrderService struct {
	orders OrderStore
	users  AccountStore
}

// NewOrderService creates a new OrderService.
func NewOrderService(orders OrderStore, users AccountStore) *OrderService {
	return &OrderService{orders: orders, users: users}
}

// Get returns the caller's order by its order number.
func (s *OrderService) Get(ctx context.Context, userID, orderNo string) (*model.Order, error) {
	order, err := s.orders.GetByUserAndOrderNo(ctx, userID, orderNo)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

// CreateForSubscription opens a pending order for userID subscribing to
// sellerID and returns it together with the buyer's account.
func (s *OrderService) CreateForSubscription(ctx context.Context, userID, sellerID string) (*model.Order, *model.User, error) {
	if userID == sellerID {
		return nil, nil, ErrSelfSubscribe
	}

	if _, err := s.users.GetByID(ctx, sellerID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}

	buyer, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}

	orderNo, err := generateOrderNo(time.Now())
	if err != nil {
		return nil, nil, err
	}

	order := &model.Order{
		OrderNo:  orderNo,
		UserID:   userID,
		SellerID: sellerID,
		Status:   model.OrderStatusPending,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, nil, err
	}

	return order, buyer, nil
}

// MarkPaid settles the order named by the gateway notification: flips its
// status, records the payment and activates the subscription.
func (s *OrderService) MarkPaid(ctx context.Context, orderNo string, payment model.Payment) error {
	if err := s.orders.MarkPaid(ctx, orderNo, payment); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return ErrOrderNotFound
		}
		return err
	}
	return nil
}

// generateOrderNo builds a date-prefixed order number with a short random
// base36 suffix, e.g. "20260831_x4k9".
func generateOrderNo(now time.Time) (string, error) {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = orderNoCharset[int(b)%len(orderNoCharset)]
	}
	return now.Format("20060102") + "_" + string(buf), nil
}
