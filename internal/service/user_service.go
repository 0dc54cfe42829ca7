package service

import (
	"errors"
	"fmt"

	"github.com/stockfolio/portfolio-tracker-backend/internal/apperrors"
	"github.com/stockfolio/portfolio-tracker-backend/internal/api/request"
	"github.com/stockfolio/portfolio-tracker-backend/internal/crypto"
	"github.com/stockfolio/portfolio-tracker-backend/internal/model"
	"github.com/stockfolio/portfolio-tracker-backend/internal/repository"
)

// UserService handles user-related business logic operations. Quote-provider
// API keys are encrypted before they reach the database.
type UserService struct {
	userRepo  *repository.UserRepository
	encryptor *crypto.Encryptor
}

// NewUserService creates a new UserService with the provided dependencies.
func NewUserService(userRepo *repository.UserRepository, encryptor *crypto.Encryptor) *UserService {
	return &UserService{
		userRepo:  userRepo,
		encryptor: encryptor,
	}
}

// SaveUser creates or updates a user, encrypting the API key at rest.
func (s *UserService) SaveUser(req request.SaveUserRequest) (model.User, error) {
	encryptedKey, err := s.encryptor.Encrypt(req.APIKey)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to encrypt API key: %w", err)
	}

	user := model.User{
		ID:       req.ID,
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		APIKey:   encryptedKey,
	}

	if err := s.userRepo.SaveUser(&user); err != nil {
		return model.User{}, fmt.Errorf("failed to save user: %w", err)
	}

	return user, nil
}

// GetAllUsers retrieves all users.
func (s *UserService) GetAllUsers() ([]model.User, error) {
	return s.userRepo.GetUsers()
}

// GetUserByID retrieves a single user by ID.
func (s *UserService) GetUserByID(userID int64) (model.User, error) {
	return s.userRepo.GetUserOnID(userID)
}

// GetUserByUsername retrieves a single user by username.
func (s *UserService) GetUserByUsername(username string) (model.User, error) {
	return s.userRepo.GetUserOnUsername(username)
}

// DeleteUserByID deletes a user by ID. Returns ErrUserNotFound when the ID
// does not exist.
func (s *UserService) DeleteUserByID(userID int64) error {
	return s.userRepo.DeleteUserOnID(userID)
}

// DeleteUserByUsername deletes a user by username. Deleting an unknown
// username is a no-op, not an error.
func (s *UserService) DeleteUserByUsername(username string) error {
	return s.userRepo.DeleteUserOnUsername(username)
}

// DecryptedAPIKey returns the user's quote-provider API key in plaintext,
// or an empty string when none is stored.
func (s *UserService) DecryptedAPIKey(userID int64) (string, error) {
	user, err := s.userRepo.GetUserOnID(userID)
	if err != nil {
		return "", err
	}
	if user.APIKey == "" {
		return "", nil
	}

	key, err := s.encryptor.Decrypt(user.APIKey)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt API key: %w", err)
	}
	return key, nil
}

// UserExists reports whether a user with the given ID exists.
func (s *UserService) UserExists(userID int64) (bool, error) {
	_, err := s.userRepo.GetUserOnID(userID)
	if errors.Is(err, apperrors.ErrUserNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
