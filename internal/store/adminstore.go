package store

import (
	"context"
	"time"

	"github.com/alumni-connect/connect-api/internal/models"
)

// DashboardStats is the aggregate view behind the admin dashboard.
type DashboardStats struct {
	TotalStudents       int64 `json:"total_students"`
	TotalAlumni         int64 `json:"total_alumni"`
	TotalAdmins         int64 `json:"total_admins"`
	ActiveOpportunities int64 `json:"active_opportunities"`
	ActiveScholarships  int64 `json:"active_scholarships"`
	PendingMentorships  int64 `json:"pending_mentorships"`
	TotalApplications   int64 `json:"total_applications"`
	TotalStories        int64 `json:"total_stories"`
}

func (s *Store) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}
	db := s.DB.WithContext(ctx)

	roleCounts := []struct {
		role models.Role
		dst  *int64
	}{
		{models.RoleStudent, &stats.TotalStudents},
		{models.RoleAlumni, &stats.TotalAlumni},
		{models.RoleAdmin, &stats.TotalAdmins},
	}
	for _, rc := range roleCounts {
		if err := db.Model(&models.User{}).Where("role = ?", rc.role).Count(rc.dst).Error; err != nil {
			return nil, err
		}
	}

	var err error
	if stats.ActiveOpportunities, err = s.CountActiveOpportunities(ctx); err != nil {
		return nil, err
	}
	if stats.ActiveScholarships, err = s.CountActiveScholarships(ctx); err != nil {
		return nil, err
	}
	if stats.PendingMentorships, err = s.CountPendingMentorshipRequests(ctx); err != nil {
		return nil, err
	}
	if stats.TotalApplications, err = s.CountApplications(ctx); err != nil {
		return nil, err
	}
	if stats.TotalStories, err = s.CountStories(ctx); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *Store) ChangeUserRole(ctx context.Context, userID string, role models.Role) error {
	return s.updateUserChecked(ctx, userID, map[string]interface{}{"role": role})
}

func (s *Store) SetUserActive(ctx context.Context, userID string, active bool) error {
	return s.updateUserChecked(ctx, userID, map[string]interface{}{"active": active})
}

// updateUserChecked is UpdateUserFields plus a RowsAffected guard, for the
// admin surface where the target id comes from the URL and may not exist.
func (s *Store) updateUserChecked(ctx context.Context, userID string, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now()
	res := s.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}
