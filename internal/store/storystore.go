package store

import (
	"context"

	"github.com/alumni-connect/connect-api/internal/models"
)

func (s *Store) CreateStory(ctx context.Context, st *models.Story) error {
	return s.DB.WithContext(ctx).Create(st).Error
}

func (s *Store) GetStoryByID(ctx context.Context, id string) (*models.Story, error) {
	var st models.Story
	if err := s.DB.WithContext(ctx).First(&st, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &st, nil
}

func (s *Store) ListStories(ctx context.Context) ([]*models.Story, error) {
	var res []*models.Story
	if err := s.DB.WithContext(ctx).Order("created_at desc").Find(&res).Error; err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Store) CountStories(ctx context.Context) (int64, error) {
	var n int64
	err := s.DB.WithContext(ctx).Model(&models.Story{}).Count(&n).Error
	return n, err
}
