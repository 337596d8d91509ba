package service

import (
	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/operator"
	"github.com/carson-networks/ledger-server/internal/storage"
)

// Service holds all business logic services.
type Service struct {
	Users  *UserService
	Ledger *LedgerService
}

// NewService creates a new Service with the given storage and write queue.
func NewService(store *storage.Storage, op *operator.OperatorDelegator) *Service {
	return &Service{
		Users:  NewUserService(store.Profiles),
		Ledger: NewLedgerService(store.Ledger, op),
	}
}

// Session is the authenticated identity a caller holds for the duration of
// one run. A nil *Session means unauthenticated, which sees nothing.
type Session struct {
	User ledger.User
}
