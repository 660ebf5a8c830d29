package services

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/diewo77/game-sales-sheets/internal/models"
)

var (
	ErrUsernameTaken      = errors.New("username_taken")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrNotGerant          = errors.New("not_gerant")
)

// AccountService handles staff accounts: authentication for everyone and
// gérant management for the owner.
type AccountService struct{ DB *gorm.DB }

func NewAccountService(db *gorm.DB) *AccountService { return &AccountService{DB: db} }

// Authenticate checks a username/password pair against the stored bcrypt
// hash. Unknown user and wrong password collapse into the same error so the
// login form cannot be used to enumerate accounts.
func (s *AccountService) Authenticate(username, password string) (*models.User, error) {
	var user models.User
	if err := s.DB.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// Get fetches one user by id.
func (s *AccountService) Get(id uint) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ListGerants returns the manager accounts, oldest first.
func (s *AccountService) ListGerants() ([]models.User, error) {
	var users []models.User
	if err := s.DB.Where("role = ?", models.RoleGerant).Order("id asc").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// CreateGerant adds a manager account. Usernames are unique across all
// users, owner included; the check runs before any write and the unique
// column backs it up against races.
func (s *AccountService) CreateGerant(username, password, name string) (*models.User, error) {
	var count int64
	if err := s.DB.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrUsernameTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := models.User{Username: username, Password: string(hash), Role: models.RoleGerant, Name: name}
	if err := s.DB.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteGerant removes a manager account. Owner accounts are not deletable
// through this path.
func (s *AccountService) DeleteGerant(id uint) error {
	var user models.User
	if err := s.DB.First(&user, id).Error; err != nil {
		return err
	}
	if user.Role != models.RoleGerant {
		return ErrNotGerant
	}
	return s.DB.Delete(&user).Error
}
