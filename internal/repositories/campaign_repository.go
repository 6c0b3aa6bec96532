package repositories

import (
	"errors"

	"reachiq/internal/models"

	"gorm.io/gorm"
)

var ErrCampaignNotFound = errors.New("campaign not found")

type CampaignRepository interface {
	Create(c *models.Campaign) error
	FindByIDForUser(id, userID string) (*models.Campaign, error)
	FindByUser(userID string, limit, offset int) ([]models.Campaign, error)
	CountByUser(userID string) (int64, error)
	Update(c *models.Campaign) error
	Delete(id, userID string) error
}

type CampaignRepositoryImpl struct {
	db *gorm.DB
}

func NewCampaignRepository(db *gorm.DB) CampaignRepository {
	return &CampaignRepositoryImpl{db: db}
}

func (r *CampaignRepositoryImpl) Create(c *models.Campaign) error {
	return r.db.Create(c).Error
}

func (r *CampaignRepositoryImpl) FindByIDForUser(id, userID string) (*models.Campaign, error) {
	var campaign models.Campaign
	err := r.db.First(&campaign, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, err
	}
	return &campaign, nil
}

func (r *CampaignRepositoryImpl) FindByUser(userID string, limit, offset int) ([]models.Campaign, error) {
	var campaigns []models.Campaign
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&campaigns).Error
	return campaigns, err
}

func (r *CampaignRepositoryImpl) CountByUser(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Campaign{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *CampaignRepositoryImpl) Update(c *models.Campaign) error {
	return r.db.Save(c).Error
}

func (r *CampaignRepositoryImpl) Delete(id, userID string) error {
	res := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Campaign{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCampaignNotFound
	}
	return nil
}

type SmsCampaignRepository interface {
	Create(c *models.SmsCampaign) error
	FindByIDForUser(id, userID string) (*models.SmsCampaign, error)
	FindByUser(userID string, limit, offset int) ([]models.SmsCampaign, error)
	CountByUser(userID string) (int64, error)
	Update(c *models.SmsCampaign) error
	Delete(id, userID string) error
}

type SmsCampaignRepositoryImpl struct {
	db *gorm.DB
}

func NewSmsCampaignRepository(db *gorm.DB) SmsCampaignRepository {
	return &SmsCampaignRepositoryImpl{db: db}
}

func (r *SmsCampaignRepositoryImpl) Create(c *models.SmsCampaign) error {
	return r.db.Create(c).Error
}

func (r *SmsCampaignRepositoryImpl) FindByIDForUser(id, userID string) (*models.SmsCampaign, error) {
	var campaign models.SmsCampaign
	err := r.db.First(&campaign, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, err
	}
	return &campaign, nil
}

func (r *SmsCampaignRepositoryImpl) FindByUser(userID string, limit, offset int) ([]models.SmsCampaign, error) {
	var campaigns []models.SmsCampaign
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&campaigns).Error
	return campaigns, err
}

func (r *SmsCampaignRepositoryImpl) CountByUser(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.SmsCampaign{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *SmsCampaignRepositoryImpl) Update(c *models.SmsCampaign) error {
	return r.db.Save(c).Error
}

func (r *SmsCampaignRepositoryImpl) Delete(id, userID string) error {
	res := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.SmsCampaign{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCampaignNotFound
	}
	return nil
}
