// Package gormstore is the PostgreSQL credential store backed by GORM.
package gormstore

import (
	"errors"

	"github.com/google/uuid"
	"github.com/slicehub/pizza-service/internal/models"
	"github.com/slicehub/pizza-service/internal/store"
	"gorm.io/gorm"
)

type GormStore struct {
	db *gorm.DB
}

func New(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) CreateUser(user *models.User) error {
	return s.db.Create(user).Error
}

func (s *GormStore) GetUserByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.Preload("Roles").First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *GormStore) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Preload("Roles").First(&user, "email = ?", email).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *GormStore) UpdateUser(user *models.User) error {
	return s.db.Omit("Roles").Save(user).Error
}

func (s *GormStore) CreateFranchise(franchise *models.Franchise, adminIDs []uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(franchise).Error; err != nil {
			return err
		}
		for _, adminID := range adminIDs {
			fid := franchise.ID
			role := models.UserRole{
				ID:          uuid.New(),
				UserID:      adminID,
				Role:        models.RoleFranchisee,
				FranchiseID: &fid,
			}
			if err := tx.Create(&role).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *GormStore) GetFranchise(id uuid.UUID) (*models.Franchise, error) {
	var franchise models.Franchise
	if err := s.db.Preload("Stores").First(&franchise, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	if err := s.loadAdmins(&franchise); err != nil {
		return nil, err
	}
	return &franchise, nil
}

func (s *GormStore) ListFranchises() ([]models.Franchise, error) {
	var franchises []models.Franchise
	if err := s.db.Preload("Stores").Order("created_at").Find(&franchises).Error; err != nil {
		return nil, err
	}
	for i := range franchises {
		if err := s.loadAdmins(&franchises[i]); err != nil {
			return nil, err
		}
	}
	return franchises, nil
}

func (s *GormStore) ListFranchisesForUser(userID uuid.UUID) ([]models.Franchise, error) {
	var franchises []models.Franchise
	err := s.db.Preload("Stores").
		Joins("JOIN user_roles ON user_roles.franchise_id = franchises.id").
		Where("user_roles.user_id = ? AND user_roles.role = ?", userID, models.RoleFranchisee).
		Order("franchises.created_at").
		Find(&franchises).Error
	if err != nil {
		return nil, err
	}
	for i := range franchises {
		if err := s.loadAdmins(&franchises[i]); err != nil {
			return nil, err
		}
	}
	return franchises, nil
}

func (s *GormStore) DeleteFranchise(id uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var franchise models.Franchise
		if err := tx.First(&franchise, "id = ?", id).Error; err != nil {
			return translate(err)
		}
		if err := tx.Where("franchise_id = ?", id).Delete(&models.Store{}).Error; err != nil {
			return err
		}
		if err := tx.Where("franchise_id = ?", id).Delete(&models.UserRole{}).Error; err != nil {
			return err
		}
		return tx.Delete(&franchise).Error
	})
}

func (s *GormStore) CreateStore(st *models.Store) error {
	return s.db.Create(st).Error
}

func (s *GormStore) GetStore(franchiseID, storeID uuid.UUID) (*models.Store, error) {
	var st models.Store
	err := s.db.First(&st, "id = ? AND franchise_id = ?", storeID, franchiseID).Error
	if err != nil {
		return nil, translate(err)
	}
	return &st, nil
}

func (s *GormStore) DeleteStore(franchiseID, storeID uuid.UUID) error {
	result := s.db.Where("id = ? AND franchise_id = ?", storeID, franchiseID).Delete(&models.Store{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *GormStore) AddMenuItem(item *models.MenuItem) error {
	return s.db.Create(item).Error
}

func (s *GormStore) GetMenuItem(id uuid.UUID) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := s.db.First(&item, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

func (s *GormStore) GetMenu() ([]models.MenuItem, error) {
	var menu []models.MenuItem
	if err := s.db.Order("created_at").Find(&menu).Error; err != nil {
		return nil, err
	}
	return menu, nil
}

func (s *GormStore) CreateOrder(order *models.Order) error {
	return s.db.Create(order).Error
}

func (s *GormStore) UpdateOrder(order *models.Order) error {
	return s.db.Omit("Items").Save(order).Error
}

func (s *GormStore) ListOrdersForDiner(dinerID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.Preload("Items").
		Where("diner_id = ?", dinerID).
		Order("created_at").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *GormStore) RevokeToken(token *models.RevokedToken) error {
	return s.db.Create(token).Error
}

func (s *GormStore) IsTokenRevoked(tokenID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.Model(&models.RevokedToken{}).Where("token_id = ?", tokenID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *GormStore) loadAdmins(franchise *models.Franchise) error {
	var admins []models.UserSummary
	err := s.db.Model(&models.User{}).
		Select("users.id, users.name, users.email").
		Joins("JOIN user_roles ON user_roles.user_id = users.id").
		Where("user_roles.franchise_id = ? AND user_roles.role = ?", franchise.ID, models.RoleFranchisee).
		Order("user_roles.created_at").
		Scan(&admins).Error
	if err != nil {
		return err
	}
	if admins == nil {
		admins = []models.UserSummary{}
	}
	franchise.Admins = admins
	return nil
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return store.ErrNotFound
	}
	return err
}
