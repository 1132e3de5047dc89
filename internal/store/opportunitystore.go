package store

import (
	"context"

	"github.com/alumni-connect/connect-api/internal/models"
)

func (s *Store) CreateOpportunity(ctx context.Context, o *models.Opportunity) error {
	return s.DB.WithContext(ctx).Create(o).Error
}

func (s *Store) GetOpportunityByID(ctx context.Context, id string) (*models.Opportunity, error) {
	var o models.Opportunity
	if err := s.DB.WithContext(ctx).First(&o, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &o, nil
}

// ListOpportunities returns active listings, newest first.
func (s *Store) ListOpportunities(ctx context.Context) ([]*models.Opportunity, error) {
	var res []*models.Opportunity
	if err := s.DB.WithContext(ctx).
		Where("active = ?", true).
		Order("created_at desc").
		Find(&res).Error; err != nil {
		return nil, err
	}
	return res, nil
}

// DeactivateOpportunity clears the active flag. Listings are otherwise
// immutable once posted.
func (s *Store) DeactivateOpportunity(ctx context.Context, id string) error {
	res := s.DB.WithContext(ctx).Model(&models.Opportunity{}).
		Where("id = ?", id).Update("active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (s *Store) CountActiveOpportunities(ctx context.Context) (int64, error) {
	var n int64
	err := s.DB.WithContext(ctx).Model(&models.Opportunity{}).Where("active = ?", true).Count(&n).Error
	return n, err
}
