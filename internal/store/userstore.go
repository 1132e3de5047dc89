package store

import (
	"context"
	"errors"
	"time"

	"github.com/alumni-connect/connect-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

/* ------------------ User CRUD ------------------ */

func (s *Store) CreateUser(ctx context.Context, u *models.User, p *models.Profile) error {
	// create user and empty profile in a transaction
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(u).Error; err != nil {
			return err
		}
		p.AdditionalInfo = map[string]interface{}{}
		return tx.Create(p).Error
	})
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.DB.WithContext(ctx).Preload("Profile").Where("email = ?", email).First(&u).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &u, nil
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := s.DB.WithContext(ctx).Preload("Profile").First(&u, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &u, nil
}

func (s *Store) UpdateUserFields(ctx context.Context, id string, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now()
	return s.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(fields).Error
}

func (s *Store) UpdateProfileFields(ctx context.Context, id string, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now()
	tx := s.DB.WithContext(ctx)
	// ensure the row exists before updating; ignore if already there
	_ = tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&models.Profile{UserID: id}).Error
	return tx.Model(&models.Profile{}).Where("user_id = ?", id).Updates(fields).Error
}

func (s *Store) ListUsers(ctx context.Context) ([]*models.User, error) {
	var res []*models.User
	if err := s.DB.WithContext(ctx).Preload("Profile").Order("created_at desc").Find(&res).Error; err != nil {
		return nil, err
	}
	return res, nil
}

// DeleteUser removes the user row and its profile. Refresh tokens are revoked
// so outstanding sessions die with the account.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.User{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.ErrNotFound
		}
		if err := tx.Delete(&models.Profile{}, "user_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Model(&models.RefreshToken{}).Where("user_id = ?", id).Update("revoked", true).Error
	})
}

func translateNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ErrNotFound
	}
	return err
}
