package repository

import (
	"errors"
	"log"
	"strings"

	"github.com/purepath/account-service/internal/domain"
	"gorm.io/gorm"
)

type UserRepository interface {
	CreateUser(user *domain.User) (*domain.User, error)
	FindUserByEmail(email string) (*domain.User, error)
	FindUserByID(id string) (*domain.User, error)
	SaveUser(user *domain.User) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, errors.New("nil user")
	}

	if err := r.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
			return nil, domain.ErrDuplicateEmail
		}
		log.Printf("create user error: %v", err)
		return nil, errors.New("failed to create user")
	}

	return user, nil
}

func (r *userRepository) FindUserByEmail(email string) (*domain.User, error) {
	user := &domain.User{}

	if err := r.db.First(user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		log.Printf("find user by email error: %v", err)
		return nil, errors.New("failed to find user by email")
	}

	return user, nil
}

func (r *userRepository) FindUserByID(id string) (*domain.User, error) {
	user := &domain.User{}

	if err := r.db.First(user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		log.Printf("find user by id error: %v", err)
		return nil, errors.New("failed to find user by id")
	}

	return user, nil
}

// SaveUser writes the full record conditionally on the version it was read
// at. Concurrent writers lose with ErrVersionConflict instead of silently
// clobbering each other's challenge fields.
func (r *userRepository) SaveUser(user *domain.User) error {
	if user == nil {
		return errors.New("nil user")
	}

	prev := user.Version
	user.Version = prev + 1

	res := r.db.Model(&domain.User{}).
		Where("id = ? AND version = ?", user.ID, prev).
		Select("*").
		Omit("id", "created_at").
		Updates(user)
	if res.Error != nil {
		user.Version = prev
		log.Printf("save user error: %v", res.Error)
		return errors.New("failed to save user")
	}
	if res.RowsAffected == 0 {
		user.Version = prev
		return domain.ErrVersionConflict
	}
	return nil
}

func isUniqueViolation(err error) bool {
	// 23505 is Postgres unique_violation; GORM's translated error does not
	// cover every driver path.
	return err != nil && strings.Contains(err.Error(), "23505")
}
