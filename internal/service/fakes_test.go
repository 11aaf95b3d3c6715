package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/inkstream/inkstream-go/internal/model"
	"github.com/inkstream/inkstream-go/internal/repository"
)

// fakeAccountStore keeps users in memory and mirrors the SQL repository's
// sentinel errors.
type fakeAccountStore struct {
	users map[string]*model.User
}

func newFakeAccountStore() *fakeAccountStore {
	return &fakeAccountStore{users: make(map[string]*model.User)}
}

func (f *fakeAccountStore) Create(_ context.Context, user *model.User) error {
	for _, existing := range f.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return repository.ErrDuplicateEmail
		}
	}
	user.ID = uuid.NewString()
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeAccountStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, user := range f.users {
		if strings.EqualFold(user.Email, email) {
			found := *user
			return &found, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeAccountStore) GetByID(_ context.Context, id string) (*model.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	found := *user
	return &found, nil
}

func (f *fakeAccountStore) UpdatePassword(_ context.Context, id, passwordHash string) error {
	user, ok := f.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	user.PasswordHash = passwordHash
	return nil
}

// fakeOrderStore keeps orders in memory keyed by order number.
type fakeOrderStore struct {
	orders   map[string]*model.Order
	payments map[string]model.Payment
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{
		orders:   make(map[string]*model.Order),
		payments: make(map[string]model.Payment),
	}
}

func (f *fakeOrderStore) Create(_ context.Context, order *model.Order) error {
	order.ID = uuid.NewString()
	stored := *order
	f.orders[order.OrderNo] = &stored
	return nil
}

func (f *fakeOrderStore) GetByUserAndOrderNo(_ context.Context, userID, orderNo string) (*model.Order, error) {
	order, ok := f.orders[orderNo]
	if !ok || order.UserID != userID {
		return nil, repository.ErrOrderNotFound
	}
	found := *order
	return &found, nil
}

func (f *fakeOrderStore) MarkPaid(_ context.Context, orderNo string, payment model.Payment) error {
	order, ok := f.orders[orderNo]
	if !ok {
		return repository.ErrOrderNotFound
	}
	order.Status = model.OrderStatusSuccess
	f.payments[orderNo] = payment
	return nil
}
