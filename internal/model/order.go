package model

import "time"

// Order statuses. An order is created PENDING when a subscription is
// initiated and marked SUCCESS by the payment gateway notify callback.
const (
	OrderStatusPending = "PENDING"
	OrderStatusSuccess = "SUCCESS"
)

// Order records a subscription purchase from UserID to SellerID.
type Order struct {
	ID        string    `json:"id"`
	OrderNo   string    `json:"orderNo"`
	UserID    string    `json:"userId"`
	SellerID  string    `json:"sellerId"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// Payment records the gateway settlement details of a paid order.
type Payment struct {
	OrderID       string `json:"-"`
	Amount        int    `json:"amount"`
	TransactionID string `json:"transactionId"`
	PaymentIP     string `json:"paymentIP"`
	EscrowBank    string `json:"escrowBank"`
	PaymentType   string `json:"paymentType"`
	Account5Code  string `json:"account5Code"`
	PayBankCode   string `json:"payBankCode"`
}
