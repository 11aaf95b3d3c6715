package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/inkstream/inkstream-go/internal/model"
)

var ErrOrderNotFound = errors.New("order not found")

// OrderRepository handles order, payment and subscription persistence.
type OrderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new OrderRepository.
func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create inserts a pending order and sets the generated id on the struct.
func (r *OrderRepository) Create(ctx context.Context, order *model.Order) error {
	order.ID = uuid.NewString()
	order.Status = model.OrderStatusPending

	query := `INSERT INTO orders (id, order_no, user_id, seller_id, status) VALUES (?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		order.ID, order.OrderNo, order.UserID, order.SellerID, order.Status)
	return err
}

// GetByUserAndOrderNo retrieves an order scoped to its buyer.
func (r *OrderRepository) GetByUserAndOrderNo(ctx context.Context, userID, orderNo string) (*model.Order, error) {
	query := `SELECT id, order_no, user_id, seller_id, status, created_at
		FROM orders WHERE order_no = ? AND user_id = ?`
	return r.scanOrder(r.db.QueryRowContext(ctx, query, orderNo, userID))
}

func (r *OrderRepository) scanOrder(row *sql.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(&o.ID, &o.OrderNo, &o.UserID, &o.SellerID, &o.Status, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &o, nil
}

// MarkPaid settles an order inside one transaction: status flips to SUCCESS,
// the gateway payment details are recorded, and the buyer's subscription to
// the seller is created.
func (r *OrderRepository) MarkPaid(ctx context.Context, orderNo string, payment model.Payment) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var orderID, userID, sellerID string
	err = tx.QueryRowContext(ctx,
		`SELECT id, user_id, seller_id FROM orders WHERE order_no = ?`, orderNo).
		Scan(&orderID, &userID, &sellerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrOrderNotFound
		}
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE orders SET status = ? WHERE id = ?`, model.OrderStatusSuccess, orderID); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO payments (id, order_id, amount, transaction_id, payment_ip,
			escrow_bank, payment_type, account5_code, pay_bank_code)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), orderID, payment.Amount, payment.TransactionID, payment.PaymentIP,
		payment.EscrowBank, payment.PaymentType, payment.Account5Code, payment.PayBankCode,
	); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT IGNORE INTO subscriptions (subscriber_id, creator_id) VALUES (?, ?)`,
		userID, sellerID); err != nil {
		return err
	}

	return tx.Commit()
}
