package repositories

import (
	"errors"
	"time"

	"reachiq/internal/models"

	"gorm.io/gorm"
)

var ErrPaymentNotFound = errors.New("payment not found")

type PaymentRepository interface {
	Create(p *models.Payment) error
	FindByOrderID(orderID string) (*models.Payment, error)
	FindByUser(userID string) ([]models.Payment, error)
	Update(p *models.Payment) error
	MarkPaid(orderID, paymentID, signature string, paidAt time.Time) error
	MarkFailed(orderID string) error
}

type PaymentRepositoryImpl struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &PaymentRepositoryImpl{db: db}
}

func (r *PaymentRepositoryImpl) Create(p *models.Payment) error {
	return r.db.Create(p).Error
}

func (r *PaymentRepositoryImpl) FindByOrderID(orderID string) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.Preload("Plan").First(&payment, "order_id = ?", orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &payment, nil
}

func (r *PaymentRepositoryImpl) FindByUser(userID string) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.Preload("Plan").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&payments).Error
	return payments, err
}

func (r *PaymentRepositoryImpl) Update(p *models.Payment) error {
	return r.db.Save(p).Error
}

func (r *PaymentRepositoryImpl) MarkPaid(orderID, paymentID, signature string, paidAt time.Time) error {
	res := r.db.Model(&models.Payment{}).
		Where("order_id = ?", orderID).
		Updates(map[string]interface{}{
			"status":     models.PaymentStatusPaid,
			"payment_id": paymentID,
			"signature":  signature,
			"paid_at":    paidAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

func (r *PaymentRepositoryImpl) MarkFailed(orderID string) error {
	res := r.db.Model(&models.Payment{}).
		Where("order_id = ?", orderID).
		Update("status", models.PaymentStatusFailed)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrPaymentNotFound
	}
	return nil
}
