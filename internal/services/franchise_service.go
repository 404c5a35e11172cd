package services

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/slicehub/pizza-service/internal/auth"
	"github.com/slicehub/pizza-service/internal/models"
	"github.com/slicehub/pizza-service/internal/store"
)

var (
	ErrCreateFranchiseDenied = errors.New("unable to create a franchise")
	ErrDeleteFranchiseDenied = errors.New("unable to delete a franchise")
	ErrCreateStoreDenied     = errors.New("unable to create a store")
	ErrDeleteStoreDenied     = errors.New("unable to delete a store")
	ErrFranchiseNameRequired = errors.New("franchise name is required")
)

type FranchiseService struct {
	store store.Store
}

func NewFranchiseService(st store.Store) *FranchiseService {
	return &FranchiseService{store: st}
}

// Create persists a franchise with the given admins. Each admin email
// must resolve to an existing user; an unknown email fails the whole
// create with store.ErrNotFound.
func (s *FranchiseService) Create(p *auth.Principal, name string, adminEmails []string) (*models.Franchise, error) {
	if !auth.CanCreateFranchise(p) {
		return nil, ErrCreateFranchiseDenied
	}
	if name == "" {
		return nil, ErrFranchiseNameRequired
	}

	adminIDs := make([]uuid.UUID, 0, len(adminEmails))
	admins := make([]models.UserSummary, 0, len(adminEmails))
	for _, email := range adminEmails {
		user, err := s.store.GetUserByEmail(strings.ToLower(email))
		if err != nil {
			return nil, err
		}
		adminIDs = append(adminIDs, user.ID)
		admins = append(admins, user.Summary())
	}

	franchise := models.Franchise{ID: uuid.New(), Name: name}
	if err := s.store.CreateFranchise(&franchise, adminIDs); err != nil {
		return nil, err
	}

	franchise.Admins = admins
	franchise.Stores = []models.Store{}
	return &franchise, nil
}

func (s *FranchiseService) List() ([]models.Franchise, error) {
	return s.store.ListFranchises()
}

// ListForUser returns the franchises the user administers. A principal
// asking about someone else without admin authority gets an empty list,
// never an error: the read stays fail-closed without leaking existence.
func (s *FranchiseService) ListForUser(p *auth.Principal, userID uuid.UUID) ([]models.Franchise, error) {
	if !auth.CanListUserFranchises(p, userID) {
		return []models.Franchise{}, nil
	}
	return s.store.ListFranchisesForUser(userID)
}

func (s *FranchiseService) Delete(p *auth.Principal, franchiseID uuid.UUID) error {
	if !auth.CanDeleteFranchise(p) {
		return ErrDeleteFranchiseDenied
	}
	return s.store.DeleteFranchise(franchiseID)
}

func (s *FranchiseService) CreateStore(p *auth.Principal, franchiseID uuid.UUID, name string) (*models.Store, error) {
	if !auth.CanCreateStore(p, franchiseID) {
		return nil, ErrCreateStoreDenied
	}
	if _, err := s.store.GetFranchise(franchiseID); err != nil {
		return nil, err
	}

	st := models.Store{ID: uuid.New(), FranchiseID: franchiseID, Name: name}
	if err := s.store.CreateStore(&st); err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *FranchiseService) DeleteStore(p *auth.Principal, franchiseID, storeID uuid.UUID) error {
	if !auth.CanDeleteStore(p, franchiseID) {
		return ErrDeleteStoreDenied
	}
	return s.store.DeleteStore(franchiseID, storeID)
}
