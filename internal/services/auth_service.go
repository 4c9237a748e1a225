package services

import (
	"errors"
	"strings"
	"time"

	"github.com/terraincognita07/dosely/internal/models"
	"github.com/terraincognita07/dosely/internal/security"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrAccountNotFound        = errors.New("account not found")
	ErrRegistrationInput      = errors.New("email and password are required")
)

const (
	inviteCodeLength   = 8
	inviteCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

type AuthUserRepository interface {
	ExistsByNormalizedEmail(email string) (bool, error)
	FindByNormalizedEmail(email string) (models.User, error)
	FindByID(userID uint) (models.User, error)
	Create(user *models.User) error
	UpdateByID(userID uint, updates map[string]any) error
}

type AuthCaregiverRepository interface {
	FindByNormalizedEmail(email string) (models.Caregiver, error)
	FindByID(caregiverID uint) (models.Caregiver, error)
	Create(caregiver *models.Caregiver) error
	ExistsByNormalizedEmail(email string) (bool, error)
	UpdateByID(caregiverID uint, updates map[string]any) error
}

type AuthService struct {
	users      AuthUserRepository
	caregivers AuthCaregiverRepository
}

func NewAuthService(users AuthUserRepository, caregivers AuthCaregiverRepository) *AuthService {
	return &AuthService{users: users, caregivers: caregivers}
}

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// NormalizeEmail lowercases and trims an address so lookups are
// case-insensitive regardless of what the client sent.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (service *AuthService) RegisterPatient(input RegisterInput) (models.User, error) {
	email := NormalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return models.User{}, ErrRegistrationInput
	}

	exists, err := service.users.ExistsByNormalizedEmail(email)
	if err != nil {
		return models.User{}, err
	}
	if exists {
		return models.User{}, ErrEmailAlreadyRegistered
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}
	inviteCode, err := security.RandomString(inviteCodeLength, inviteCodeAlphabet)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		Email:        email,
		PasswordHash: string(passwordHash),
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		InviteCode:   inviteCode,
		CreatedAt:    time.Now(),
	}
	if err := service.users.Create(&user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (service *AuthService) RegisterCaregiver(input RegisterInput) (models.Caregiver, error) {
	email := NormalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return models.Caregiver{}, ErrRegistrationInput
	}

	exists, err := service.caregivers.ExistsByNormalizedEmail(email)
	if err != nil {
		return models.Caregiver{}, err
	}
	if exists {
		return models.Caregiver{}, ErrEmailAlreadyRegistered
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.Caregiver{}, err
	}

	caregiver := models.Caregiver{
		Email:        email,
		PasswordHash: string(passwordHash),
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		CreatedAt:    time.Now(),
	}
	if err := service.caregivers.Create(&caregiver); err != nil {
		return models.Caregiver{}, err
	}
	return caregiver, nil
}

func (service *AuthService) LoginPatient(email string, password string) (models.User, error) {
	user, err := service.users.FindByNormalizedEmail(NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (service *AuthService) LoginCaregiver(email string, password string) (models.Caregiver, error) {
	caregiver, err := service.caregivers.FindByNormalizedEmail(NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Caregiver{}, ErrInvalidCredentials
		}
		return models.Caregiver{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(caregiver.PasswordHash), []byte(password)) != nil {
		return models.Caregiver{}, ErrInvalidCredentials
	}
	return caregiver, nil
}

func (service *AuthService) GetPatient(userID uint) (models.User, error) {
	user, err := service.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrAccountNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func (service *AuthService) GetCaregiver(caregiverID uint) (models.Caregiver, error) {
	caregiver, err := service.caregivers.FindByID(caregiverID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Caregiver{}, ErrAccountNotFound
		}
		return models.Caregiver{}, err
	}
	return caregiver, nil
}

type ProfileUpdateInput struct {
	FirstName       string
	LastName        string
	Password        string
	ProfileImageURL string
}

func (service *AuthService) UpdatePatientProfile(userID uint, input ProfileUpdateInput) error {
	updates, err := buildProfileUpdates(input)
	if err != nil {
		return err
	}
	if len(updates) == 0 {
		return nil
	}
	return service.users.UpdateByID(userID, updates)
}

func (service *AuthService) UpdateCaregiverProfile(caregiverID uint, input ProfileUpdateInput) error {
	updates, err := buildProfileUpdates(input)
	if err != nil {
		return err
	}
	if len(updates) == 0 {
		return nil
	}
	return service.caregivers.UpdateByID(caregiverID, updates)
}

func buildProfileUpdates(input ProfileUpdateInput) (map[string]any, error) {
	updates := map[string]any{}
	if name := strings.TrimSpace(input.FirstName); name != "" {
		updates["first_name"] = name
	}
	if name := strings.TrimSpace(input.LastName); name != "" {
		updates["last_name"] = name
	}
	if input.ProfileImageURL != "" {
		updates["profile_image_url"] = input.ProfileImageURL
	}
	if input.Password != "" {
		passwordHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		updates["password_hash"] = string(passwordHash)
	}
	return updates, nil
}
