package db

import (
	"github.com/terraincognita07/dosely/internal/models"
	"gorm.io/gorm"
)

type CaregiverRepository struct {
	database *gorm.DB
}

func NewCaregiverRepository(database *gorm.DB) *CaregiverRepository {
	return &CaregiverRepository{database: database}
}

func (repo *CaregiverRepository) FindByID(caregiverID uint) (models.Caregiver, error) {
	var caregiver models.Caregiver
	if err := repo.database.First(&caregiver, caregiverID).Error; err != nil {
		return models.Caregiver{}, err
	}
	return caregiver, nil
}

func (repo *CaregiverRepository) FindByNormalizedEmail(email string) (models.Caregiver, error) {
	var caregiver models.Caregiver
	if err := repo.database.Where("lower(trim(email)) = ?", email).First(&caregiver).Error; err != nil {
		return models.Caregiver{}, err
	}
	return caregiver, nil
}

func (repo *CaregiverRepository) ExistsByNormalizedEmail(email string) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.Caregiver{}).
		Where("lower(trim(email)) = ?", email).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

func (repo *CaregiverRepository) Create(caregiver *models.Caregiver) error {
	return repo.database.Create(caregiver).Error
}

func (repo *CaregiverRepository) UpdateByID(caregiverID uint, updates map[string]any) error {
	return repo.database.Model(&models.Caregiver{}).Where("id = ?", caregiverID).Updates(updates).Error
}

// FindCaregiverByNormalizedEmail exists alongside FindByNormalizedEmail so
// the repository satisfies the caring-store interface with an unambiguous
// method name.
func (repo *CaregiverRepository) FindCaregiverByNormalizedEmail(email string) (models.Caregiver, error) {
	return repo.FindByNormalizedEmail(email)
}

func (repo *CaregiverRepository) FindPatientByInviteCode(code string) (models.User, error) {
	var patient models.User
	if err := repo.database.Where("invite_code = ?", code).First(&patient).Error; err != nil {
		return models.User{}, err
	}
	return patient, nil
}

func (repo *CaregiverRepository) CaringExists(userID uint, caregiverID uint) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.Caring{}).
		Where("user_id = ? AND caregiver_id = ?", userID, caregiverID).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

func (repo *CaregiverRepository) CreateCaring(caring *models.Caring) error {
	return repo.database.Create(caring).Error
}

func (repo *CaregiverRepository) FindCaringByID(caringID uint) (models.Caring, error) {
	var caring models.Caring
	if err := repo.database.First(&caring, caringID).Error; err != nil {
		return models.Caring{}, err
	}
	return caring, nil
}

func (repo *CaregiverRepository) DeleteCaring(caringID uint) error {
	return repo.database.Delete(&models.Caring{}, caringID).Error
}

func (repo *CaregiverRepository) ListCaregiversForUser(userID uint) ([]models.CaregiverSummary, error) {
	summaries := make([]models.CaregiverSummary, 0)
	err := repo.database.Raw(`
SELECT c.id AS caring_id, cg.first_name, cg.last_name, cg.email
FROM carings c
JOIN caregivers cg ON cg.id = c.caregiver_id
WHERE c.user_id = ? AND c.status = ?
ORDER BY c.granted_at ASC`, userID, models.CaringStatusActive).Scan(&summaries).Error
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

func (repo *CaregiverRepository) ListPatientsForCaregiver(caregiverID uint) ([]models.User, error) {
	patients := make([]models.User, 0)
	err := repo.database.Raw(`
SELECT u.id, u.email, u.first_name, u.last_name, u.invite_code, u.profile_image_url, u.created_at
FROM carings c
JOIN users u ON u.id = c.user_id
WHERE c.caregiver_id = ? AND c.status = ?
ORDER BY u.first_name ASC, u.id ASC`, caregiverID, models.CaringStatusActive).Scan(&patients).Error
	if err != nil {
		return nil, err
	}
	return patients, nil
}
