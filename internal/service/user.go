package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/alumni-connect/connect-api/internal/models"
	"github.com/alumni-connect/connect-api/internal/store"
	"github.com/alumni-connect/connect-api/internal/utils"
)

type UserService struct {
	store *store.Store
}

func NewUserService(s *store.Store) *UserService {
	return &UserService{store: s}
}

// CreateUser registers a user with a validated role. An empty password gets a
// random one (OAuth users sign in without a local password).
func (u *UserService) CreateUser(ctx context.Context, email, password, name string, role models.Role, picture string) (*models.User, error) {
	uid, err := utils.GenerateUserID()
	if err != nil {
		return nil, err
	}
	if password == "" {
		password = utils.GenerateRandomString(12)
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		ID:           uid,
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Role:         role,
		Active:       true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	profile := &models.Profile{
		UserID:            uid,
		ProfilePictureURL: picture,
	}
	// try create; if conflict on ID (rare), regenerate few times
	for i := 0; i < 5; i++ {
		err = u.store.CreateUser(ctx, user, profile)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
		// a duplicate can come from the email column too; retrying a fresh
		// id will never fix that
		if _, lookupErr := u.store.GetUserByEmail(ctx, email); lookupErr == nil {
			return nil, &models.ConflictError{Detail: "email already registered"}
		}
		uid, err2 := utils.GenerateUserID()
		if err2 != nil {
			return nil, err2
		}
		user.ID = uid
		profile.UserID = uid
	}
	return nil, errors.New("could not create unique user id")
}
