package store

import (
	"context"
	"time"

	"github.com/alumni-connect/connect-api/internal/models"
)

func (s *Store) CreateMentorshipRequest(ctx context.Context, m *models.MentorshipRequest) error {
	return s.DB.WithContext(ctx).Create(m).Error
}

func (s *Store) GetMentorshipRequestByID(ctx context.Context, id string) (*models.MentorshipRequest, error) {
	var m models.MentorshipRequest
	if err := s.DB.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &m, nil
}

// ResolveMentorshipRequest performs the pending→terminal transition as a
// single conditional update. Returns false when no pending row matched, i.e.
// the request was already resolved (possibly by a concurrent caller).
func (s *Store) ResolveMentorshipRequest(ctx context.Context, id string, decision models.RequestStatus) (bool, error) {
	res := s.DB.WithContext(ctx).Model(&models.MentorshipRequest{}).
		Where("id = ? AND status = ?", id, models.RequestPending).
		Updates(map[string]interface{}{"status": decision, "resolved_at": time.Now()})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ListMentorshipRequestsFor scopes by viewer: admins see everything, everyone
// else sees requests naming them as student or mentor. Newest first; id
// breaks created_at ties so the order is total.
func (s *Store) ListMentorshipRequestsFor(ctx context.Context, viewer *models.User) ([]*models.MentorshipRequest, error) {
	q := s.DB.WithContext(ctx).Model(&models.MentorshipRequest{})
	if viewer.Role != models.RoleAdmin {
		q = q.Where("student_id = ? OR mentor_id = ?", viewer.ID, viewer.ID)
	}
	var res []*models.MentorshipRequest
	if err := q.Order("created_at desc, id desc").Find(&res).Error; err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Store) CountPendingMentorshipRequests(ctx context.Context) (int64, error) {
	var n int64
	err := s.DB.WithContext(ctx).Model(&models.MentorshipRequest{}).
		Where("status = ?", models.RequestPending).Count(&n).Error
	return n, err
}
