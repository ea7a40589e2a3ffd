package repository

import (
	"context"
	"errors"
	"fmt"

	"payexsync/dto/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// Create stores a user with a bcrypt hash of password.
func (r *UserRepository) Create(ctx context.Context, username, email, password, role string) (*model.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := model.User{
		Username: username,
		Email:    email,
		Password: string(hashed),
		Role:     role,
	}
	if err := r.DB.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

// Authenticate returns the user when username and password match.
func (r *UserRepository) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error fetching user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// EnsureUser creates the user unless the username exists already.
func (r *UserRepository) EnsureUser(ctx context.Context, username, email, password, role string) (bool, error) {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&model.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return false, fmt.Errorf("error counting users: %w", err)
	}
	if count > 0 {
		return false, nil
	}
	if password == "" {
		return false, errors.New("password must not be empty")
	}
	if _, err := r.Create(ctx, username, email, password, role); err != nil {
		return false, err
	}
	return true, nil
}
