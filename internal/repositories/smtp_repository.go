package repositories

import (
	"errors"

	"reachiq/internal/models"

	"gorm.io/gorm"
)

var ErrSmtpConfigNotFound = errors.New("smtp config not found")

type SmtpRepository interface {
	Create(cfg *models.SmtpConfig) error
	// FindByIDForUser scopes the lookup to the owner; a config belonging to
	// another user is reported as not found rather than forbidden.
	FindByIDForUser(id, userID string) (*models.SmtpConfig, error)
	FindByUser(userID string) ([]models.SmtpConfig, error)
	CountByUser(userID string) (int64, error)
	Update(cfg *models.SmtpConfig) error
	Delete(id, userID string) error
}

type SmtpRepositoryImpl struct {
	db *gorm.DB
}

func NewSmtpRepository(db *gorm.DB) SmtpRepository {
	return &SmtpRepositoryImpl{db: db}
}

func (r *SmtpRepositoryImpl) Create(cfg *models.SmtpConfig) error {
	return r.db.Create(cfg).Error
}

func (r *SmtpRepositoryImpl) FindByIDForUser(id, userID string) (*models.SmtpConfig, error) {
	var cfg models.SmtpConfig
	err := r.db.First(&cfg, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSmtpConfigNotFound
		}
		return nil, err
	}
	return &cfg, nil
}

func (r *SmtpRepositoryImpl) FindByUser(userID string) ([]models.SmtpConfig, error) {
	var configs []models.SmtpConfig
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&configs).Error
	return configs, err
}

func (r *SmtpRepositoryImpl) CountByUser(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.SmtpConfig{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *SmtpRepositoryImpl) Update(cfg *models.SmtpConfig) error {
	return r.db.Save(cfg).Error
}

func (r *SmtpRepositoryImpl) Delete(id, userID string) error {
	res := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.SmtpConfig{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrSmtpConfigNotFound
	}
	return nil
}
