// Package store defines the credential store contract: persistence for
// users, franchises, stores, menu items, orders, and revoked session
// tokens. Every implementation must make single-entity writes atomic so
// a franchise create/delete or an order write is never observably
// partial.
package store

import (
	"errors"

	"github.com/google/uuid"
	"github.com/slicehub/pizza-service/internal/models"
)

var ErrNotFound = errors.New("record not found")

type Store interface {
	// Users
	CreateUser(user *models.User) error
	GetUserByID(id uuid.UUID) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	UpdateUser(user *models.User) error

	// Franchises and stores. CreateFranchise also grants each admin a
	// franchisee role scoped to the new franchise, atomically.
	// DeleteFranchise cascades to the franchise's stores and roles.
	CreateFranchise(franchise *models.Franchise, adminIDs []uuid.UUID) error
	GetFranchise(id uuid.UUID) (*models.Franchise, error)
	ListFranchises() ([]models.Franchise, error)
	ListFranchisesForUser(userID uuid.UUID) ([]models.Franchise, error)
	DeleteFranchise(id uuid.UUID) error
	CreateStore(s *models.Store) error
	GetStore(franchiseID, storeID uuid.UUID) (*models.Store, error)
	DeleteStore(franchiseID, storeID uuid.UUID) error

	// Global menu
	AddMenuItem(item *models.MenuItem) error
	GetMenuItem(id uuid.UUID) (*models.MenuItem, error)
	GetMenu() ([]models.MenuItem, error)

	// Orders
	CreateOrder(order *models.Order) error
	UpdateOrder(order *models.Order) error
	ListOrdersForDiner(dinerID uuid.UUID) ([]models.Order, error)

	// Token revocation, keyed by token id (jti), never the raw token.
	RevokeToken(token *models.RevokedToken) error
	IsTokenRevoked(tokenID uuid.UUID) (bool, error)
}
