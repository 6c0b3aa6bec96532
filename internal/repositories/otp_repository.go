package repositories

import (
	"errors"
	"time"

	"reachiq/internal/models"

	"gorm.io/gorm"
)

var ErrOtpNotFound = errors.New("otp not found")

type OtpRepository interface {
	Create(otp *models.Otp) error
	// FindLatest returns the newest code issued for the email and type,
	// used or not; validity is checked by the caller.
	FindLatest(email string, otpType models.OtpType) (*models.Otp, error)
	MarkUsed(id string) error
	IncrementAttempts(id string) error
	DeleteExpired(before time.Time) error
}

type OtpRepositoryImpl struct {
	db *gorm.DB
}

func NewOtpRepository(db *gorm.DB) OtpRepository {
	return &OtpRepositoryImpl{db: db}
}

func (r *OtpRepositoryImpl) Create(otp *models.Otp) error {
	return r.db.Create(otp).Error
}

func (r *OtpRepositoryImpl) FindLatest(email string, otpType models.OtpType) (*models.Otp, error) {
	var otp models.Otp
	err := r.db.Where("email = ? AND type = ?", email, otpType).
		Order("created_at DESC").
		First(&otp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOtpNotFound
		}
		return nil, err
	}
	return &otp, nil
}

func (r *OtpRepositoryImpl) MarkUsed(id string) error {
	return r.db.Model(&models.Otp{}).Where("id = ?", id).Update("used", true).Error
}

func (r *OtpRepositoryImpl) IncrementAttempts(id string) error {
	return r.db.Model(&models.Otp{}).
		Where("id = ?", id).
		UpdateColumn("attempts", gorm.Expr("attempts + 1")).Error
}

func (r *OtpRepositoryImpl) DeleteExpired(before time.Time) error {
	return r.db.Where("expires_at < ?", before).Delete(&models.Otp{}).Error
}
