package store

import (
	"context"
	"errors"
	"time"

	"github.com/alumni-connect/connect-api/internal/models"
	"gorm.io/gorm"
)

func (s *Store) CreateScholarship(ctx context.Context, sc *models.Scholarship) error {
	return s.DB.WithContext(ctx).Create(sc).Error
}

type ScholarshipWithCreator struct {
	models.Scholarship
	CreatedByName string `json:"created_by_name"`
}

func (s *Store) GetScholarshipByID(ctx context.Context, id string) (*ScholarshipWithCreator, error) {
	var res ScholarshipWithCreator
	err := s.DB.WithContext(ctx).
		Table("scholarships").
		Select("scholarships.*, users.name AS created_by_name").
		Joins("LEFT JOIN users ON users.id = scholarships.created_by").
		Where("scholarships.id = ?", id).
		First(&res).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &res, nil
}

// ListScholarships returns active scholarships, earliest deadline first so
// the most urgent ones surface at the top.
func (s *Store) ListScholarships(ctx context.Context) ([]*ScholarshipWithCreator, error) {
	return s.listScholarships(ctx, s.DB.WithContext(ctx))
}

// ListEligibleScholarships filters active scholarships to those the student
// qualifies for. A scholarship with no CGPA or category requirement matches
// everyone; a student with no recorded CGPA counts as 0.
func (s *Store) ListEligibleScholarships(ctx context.Context, cgpa float64, category string) ([]*ScholarshipWithCreator, error) {
	q := s.DB.WithContext(ctx).
		Where("(cgpa_requirement IS NULL OR cgpa_requirement <= ?)", cgpa).
		Where("(category_requirement = '' OR category_requirement = ?)", category)
	return s.listScholarships(ctx, q)
}

func (s *Store) listScholarships(_ context.Context, q *gorm.DB) ([]*ScholarshipWithCreator, error) {
	var res []*ScholarshipWithCreator
	err := q.
		Table("scholarships").
		Select("scholarships.*, users.name AS created_by_name").
		Joins("LEFT JOIN users ON users.id = scholarships.created_by").
		Where("scholarships.active = ?", true).
		Order("scholarships.deadline asc").
		Find(&res).Error
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Store) UpdateScholarshipFields(ctx context.Context, id string, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now()
	res := s.DB.WithContext(ctx).Model(&models.Scholarship{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

// DeactivateScholarship clears the active flag; rows are never hard-deleted
// so existing applications keep their reference.
func (s *Store) DeactivateScholarship(ctx context.Context, id string) error {
	res := s.DB.WithContext(ctx).Model(&models.Scholarship{}).
		Where("id = ?", id).Update("active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (s *Store) CountActiveScholarships(ctx context.Context) (int64, error) {
	var n int64
	err := s.DB.WithContext(ctx).Model(&models.Scholarship{}).Where("active = ?", true).Count(&n).Error
	return n, err
}

/* ------------------ scholarship applications ------------------ */

func (s *Store) CreateScholarshipApplication(ctx context.Context, a *models.ScholarshipApplication) error {
	err := s.DB.WithContext(ctx).Create(a).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &models.ConflictError{Detail: "already applied for this scholarship"}
	}
	return err
}

type ScholarshipApplicationWithStudent struct {
	models.ScholarshipApplication
	StudentName     string   `json:"student_name"`
	StudentEmail    string   `json:"student_email"`
	StudentCGPA     *float64 `json:"student_cgpa,omitempty"`
	StudentCategory string   `json:"student_category"`
	StudentMajor    string   `json:"student_major"`
}

// ListScholarshipApplications returns a scholarship's submissions with the
// applicant's identity and eligibility data joined in, newest first.
func (s *Store) ListScholarshipApplications(ctx context.Context, scholarshipID string) ([]*ScholarshipApplicationWithStudent, error) {
	var res []*ScholarshipApplicationWithStudent
	err := s.DB.WithContext(ctx).
		Table("scholarship_applications").
		Select("scholarship_applications.*, users.name AS student_name, users.email AS student_email, profiles.cgpa AS student_cgpa, profiles.category AS student_category, profiles.major AS student_major").
		Joins("JOIN users ON users.id = scholarship_applications.student_id").
		Joins("LEFT JOIN profiles ON profiles.user_id = scholarship_applications.student_id").
		Where("scholarship_applications.scholarship_id = ?", scholarshipID).
		Order("scholarship_applications.created_at desc").
		Find(&res).Error
	if err != nil {
		return nil, err
	}
	return res, nil
}

type ScholarshipApplicationWithScholarship struct {
	models.ScholarshipApplication
	ScholarshipTitle    string     `json:"scholarship_title"`
	ScholarshipAmount   float64    `json:"scholarship_amount"`
	ScholarshipDeadline *time.Time `json:"scholarship_deadline,omitempty"`
	ScholarshipActive   bool       `json:"scholarship_active"`
}

// ListScholarshipApplicationsByStudent returns the student's own submissions,
// newest first, with the scholarship summary joined in.
func (s *Store) ListScholarshipApplicationsByStudent(ctx context.Context, studentID string) ([]*ScholarshipApplicationWithScholarship, error) {
	var res []*ScholarshipApplicationWithScholarship
	err := s.DB.WithContext(ctx).
		Table("scholarship_applications").
		Select("scholarship_applications.*, scholarships.title AS scholarship_title, scholarships.amount AS scholarship_amount, scholarships.deadline AS scholarship_deadline, scholarships.active AS scholarship_active").
		Joins("JOIN scholarships ON scholarships.id = scholarship_applications.scholarship_id").
		Where("scholarship_applications.student_id = ?", studentID).
		Order("scholarship_applications.created_at desc").
		Find(&res).Error
	if err != nil {
		return nil, err
	}
	return res, nil
}

type ScholarshipApplicationWithOwner struct {
	models.ScholarshipApplication
	ScholarshipOwner string `json:"-"`
}

// GetScholarshipApplicationByID also resolves who owns the scholarship so the
// caller can authorize a review.
func (s *Store) GetScholarshipApplicationByID(ctx context.Context, id string) (*ScholarshipApplicationWithOwner, error) {
	var res ScholarshipApplicationWithOwner
	err := s.DB.WithContext(ctx).
		Table("scholarship_applications").
		Select("scholarship_applications.*, scholarships.created_by AS scholarship_owner").
		Joins("JOIN scholarships ON scholarships.id = scholarship_applications.scholarship_id").
		Where("scholarship_applications.id = ?", id).
		First(&res).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &res, nil
}

func (s *Store) UpdateScholarshipApplicationStatus(ctx context.Context, id string, status models.ScholarshipApplicationStatus) error {
	res := s.DB.WithContext(ctx).Model(&models.ScholarshipApplication{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "updated_at": time.Now()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}
