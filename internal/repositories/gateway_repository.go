package repositories

import (
	"errors"

	"reachiq/internal/models"

	"gorm.io/gorm"
)

var ErrGatewayNotFound = errors.New("sms gateway not found")

type GatewayRepository interface {
	Create(gw *models.SmsGatewayConfig) error
	FindByIDForUser(id, userID string) (*models.SmsGatewayConfig, error)
	FindByUser(userID string) ([]models.SmsGatewayConfig, error)
	CountByUser(userID string) (int64, error)
	Update(gw *models.SmsGatewayConfig) error
	UpdateStatus(id string, status models.GatewayStatus) error
	Delete(id, userID string) error
}

type GatewayRepositoryImpl struct {
	db *gorm.DB
}

func NewGatewayRepository(db *gorm.DB) GatewayRepository {
	return &GatewayRepositoryImpl{db: db}
}

func (r *GatewayRepositoryImpl) Create(gw *models.SmsGatewayConfig) error {
	return r.db.Create(gw).Error
}

func (r *GatewayRepositoryImpl) FindByIDForUser(id, userID string) (*models.SmsGatewayConfig, error) {
	var gw models.SmsGatewayConfig
	err := r.db.First(&gw, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGatewayNotFound
		}
		return nil, err
	}
	return &gw, nil
}

func (r *GatewayRepositoryImpl) FindByUser(userID string) ([]models.SmsGatewayConfig, error) {
	var gateways []models.SmsGatewayConfig
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&gateways).Error
	return gateways, err
}

func (r *GatewayRepositoryImpl) CountByUser(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.SmsGatewayConfig{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *GatewayRepositoryImpl) Update(gw *models.SmsGatewayConfig) error {
	return r.db.Save(gw).Error
}

func (r *GatewayRepositoryImpl) UpdateStatus(id string, status models.GatewayStatus) error {
	res := r.db.Model(&models.SmsGatewayConfig{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrGatewayNotFound
	}
	return nil
}

func (r *GatewayRepositoryImpl) Delete(id, userID string) error {
	res := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.SmsGatewayConfig{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrGatewayNotFound
	}
	return nil
}
