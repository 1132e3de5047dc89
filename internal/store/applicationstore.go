package store

import (
	"context"
	"errors"

	"github.com/alumni-connect/connect-api/internal/models"
	"gorm.io/gorm"
)

// CreateApplication inserts an application. The (applicant_id, opportunity_id)
// unique index makes a duplicate submission a conflict rather than a second
// row.
func (s *Store) CreateApplication(ctx context.Context, a *models.Application) error {
	err := s.DB.WithContext(ctx).Create(a).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &models.ConflictError{Detail: "already applied to this opportunity"}
	}
	return err
}

// ListApplicationsByApplicant returns the applicant's submissions, newest
// first, with the opportunity title/company joined in.
func (s *Store) ListApplicationsByApplicant(ctx context.Context, applicantID string) ([]*ApplicationWithOpportunity, error) {
	var res []*ApplicationWithOpportunity
	err := s.DB.WithContext(ctx).
		Table("applications").
		Select("applications.*, opportunities.title AS opportunity_title, opportunities.company AS opportunity_company").
		Joins("LEFT JOIN opportunities ON opportunities.id = applications.opportunity_id").
		Where("applications.applicant_id = ?", applicantID).
		Order("applications.created_at desc").
		Find(&res).Error
	if err != nil {
		return nil, err
	}
	return res, nil
}

type ApplicationWithOpportunity struct {
	models.Application
	OpportunityTitle   string `json:"opportunity_title"`
	OpportunityCompany string `json:"opportunity_company"`
}

func (s *Store) CountApplications(ctx context.Context) (int64, error) {
	var n int64
	err := s.DB.WithContext(ctx).Model(&models.Application{}).Count(&n).Error
	return n, err
}
