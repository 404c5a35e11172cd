// Package storetest provides a mutex-guarded in-memory credential store
// for handler and service tests.
package storetest

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/slicehub/pizza-service/internal/models"
	"github.com/slicehub/pizza-service/internal/store"
)

type InMemory struct {
	mu         sync.Mutex
	users      []models.User
	roles      []models.UserRole
	franchises []models.Franchise
	stores     []models.Store
	menu       []models.MenuItem
	orders     []models.Order
	revoked    map[uuid.UUID]models.RevokedToken
}

func New() *InMemory {
	return &InMemory{revoked: make(map[uuid.UUID]models.RevokedToken)}
}

func (s *InMemory) CreateUser(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now()
	for i := range user.Roles {
		user.Roles[i].UserID = user.ID
		if user.Roles[i].ID == uuid.Nil {
			user.Roles[i].ID = uuid.New()
		}
		s.roles = append(s.roles, user.Roles[i])
	}
	s.users = append(s.users, *user)
	return nil
}

func (s *InMemory) GetUserByID(id uuid.UUID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == id {
			return s.userWithRoles(s.users[i]), nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *InMemory) GetUserByEmail(email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if strings.EqualFold(s.users[i].Email, email) {
			return s.userWithRoles(s.users[i]), nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *InMemory) UpdateUser(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == user.ID {
			roles := s.users[i].Roles
			s.users[i] = *user
			s.users[i].Roles = roles
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *InMemory) CreateFranchise(franchise *models.Franchise, adminIDs []uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if franchise.ID == uuid.Nil {
		franchise.ID = uuid.New()
	}
	franchise.CreatedAt = time.Now()
	for _, adminID := range adminIDs {
		fid := franchise.ID
		s.roles = append(s.roles, models.UserRole{
			ID:          uuid.New(),
			UserID:      adminID,
			Role:        models.RoleFranchisee,
			FranchiseID: &fid,
			CreatedAt:   time.Now(),
		})
	}
	s.franchises = append(s.franchises, *franchise)
	return nil
}

func (s *InMemory) GetFranchise(id uuid.UUID) (*models.Franchise, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.franchises {
		if s.franchises[i].ID == id {
			return s.franchiseView(s.franchises[i]), nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *InMemory) ListFranchises() ([]models.Franchise, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Franchise, 0, len(s.franchises))
	for i := range s.franchises {
		out = append(out, *s.franchiseView(s.franchises[i]))
	}
	return out, nil
}

func (s *InMemory) ListFranchisesForUser(userID uuid.UUID) ([]models.Franchise, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Franchise
	for i := range s.franchises {
		if s.isFranchiseAdmin(userID, s.franchises[i].ID) {
			out = append(out, *s.franchiseView(s.franchises[i]))
		}
	}
	if out == nil {
		out = []models.Franchise{}
	}
	return out, nil
}

func (s *InMemory) DeleteFranchise(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := -1
	for i := range s.franchises {
		if s.franchises[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return store.ErrNotFound
	}
	s.franchises = append(s.franchises[:idx], s.franchises[idx+1:]...)

	var stores []models.Store
	for _, st := range s.stores {
		if st.FranchiseID != id {
			stores = append(stores, st)
		}
	}
	s.stores = stores

	var roles []models.UserRole
	for _, r := range s.roles {
		if r.FranchiseID == nil || *r.FranchiseID != id {
			roles = append(roles, r)
		}
	}
	s.roles = roles
	return nil
}

func (s *InMemory) CreateStore(st *models.Store) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st.ID == uuid.Nil {
		st.ID = uuid.New()
	}
	st.CreatedAt = time.Now()
	s.stores = append(s.stores, *st)
	return nil
}

func (s *InMemory) GetStore(franchiseID, storeID uuid.UUID) (*models.Store, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.stores {
		if s.stores[i].ID == storeID && s.stores[i].FranchiseID == franchiseID {
			st := s.stores[i]
			return &st, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *InMemory) DeleteStore(franchiseID, storeID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.stores {
		if s.stores[i].ID == storeID && s.stores[i].FranchiseID == franchiseID {
			s.stores = append(s.stores[:i], s.stores[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *InMemory) AddMenuItem(item *models.MenuItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	item.CreatedAt = time.Now()
	s.menu = append(s.menu, *item)
	return nil
}

func (s *InMemory) GetMenuItem(id uuid.UUID) (*models.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.menu {
		if s.menu[i].ID == id {
			item := s.menu[i]
			return &item, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *InMemory) GetMenu() ([]models.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	menu := make([]models.MenuItem, len(s.menu))
	copy(menu, s.menu)
	return menu, nil
}

func (s *InMemory) CreateOrder(order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	order.CreatedAt = time.Now()
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
		if order.Items[i].ID == uuid.Nil {
			order.Items[i].ID = uuid.New()
		}
	}
	s.orders = append(s.orders, *order)
	return nil
}

func (s *InMemory) UpdateOrder(order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.orders {
		if s.orders[i].ID == order.ID {
			items := s.orders[i].Items
			s.orders[i] = *order
			s.orders[i].Items = items
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *InMemory) ListOrdersForDiner(dinerID uuid.UUID) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Order{}
	for _, o := range s.orders {
		if o.DinerID == dinerID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *InMemory) RevokeToken(token *models.RevokedToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	token.CreatedAt = time.Now()
	s.revoked[token.TokenID] = *token
	return nil
}

func (s *InMemory) IsTokenRevoked(tokenID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.revoked[tokenID]
	return ok, nil
}

func (s *InMemory) isFranchiseAdmin(userID, franchiseID uuid.UUID) bool {
	for _, r := range s.roles {
		if r.UserID == userID && r.Role == models.RoleFranchisee && r.FranchiseID != nil && *r.FranchiseID == franchiseID {
			return true
		}
	}
	return false
}

func (s *InMemory) userWithRoles(u models.User) *models.User {
	u.Roles = nil
	for _, r := range s.roles {
		if r.UserID == u.ID {
			u.Roles = append(u.Roles, r)
		}
	}
	return &u
}

func (s *InMemory) franchiseView(f models.Franchise) *models.Franchise {
	f.Stores = []models.Store{}
	for _, st := range s.stores {
		if st.FranchiseID == f.ID {
			f.Stores = append(f.Stores, st)
		}
	}
	f.Admins = []models.UserSummary{}
	for _, r := range s.roles {
		if r.Role == models.RoleFranchisee && r.FranchiseID != nil && *r.FranchiseID == f.ID {
			for _, u := range s.users {
				if u.ID == r.UserID {
					f.Admins = append(f.Admins, u.Summary())
				}
			}
		}
	}
	return &f
}
