package store

import (
	"context"

	"github.com/alumni-connect/connect-api/internal/models"
)

func (s *Store) CreateMessage(ctx context.Context, m *models.Message) error {
	return s.DB.WithContext(ctx).Create(m).Error
}

func (s *Store) GetMessageByID(ctx context.Context, id string) (*models.Message, error) {
	var m models.Message
	if err := s.DB.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &m, nil
}

type MessageWithNames struct {
	models.Message
	SenderName   string `json:"sender_name"`
	ReceiverName string `json:"receiver_name"`
}

// ListMessagesFor returns every message the user sent or received, newest
// first, with both party names joined in.
func (s *Store) ListMessagesFor(ctx context.Context, userID string) ([]*MessageWithNames, error) {
	var res []*MessageWithNames
	err := s.DB.WithContext(ctx).
		Table("messages").
		Select("messages.*, senders.name AS sender_name, receivers.name AS receiver_name").
		Joins("LEFT JOIN users AS senders ON senders.id = messages.sender_id").
		Joins("LEFT JOIN users AS receivers ON receivers.id = messages.receiver_id").
		Where("messages.sender_id = ? OR messages.receiver_id = ?", userID, userID).
		Order("messages.created_at desc, messages.id desc").
		Find(&res).Error
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Store) MarkMessageRead(ctx context.Context, id string) error {
	res := s.DB.WithContext(ctx).Model(&models.Message{}).
		Where("id = ?", id).Update("read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}
