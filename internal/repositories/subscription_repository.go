package repositories

import (
	"errors"
	"fmt"
	"time"

	"reachiq/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrNoActiveSubscription = errors.New("no active subscription")
)

type SubscriptionRepository interface {
	Create(sub *models.Subscription) error
	FindByUser(userID string) (*models.Subscription, error)
	// FindActiveByUser returns the subscription only when its status is
	// active; otherwise ErrNoActiveSubscription.
	FindActiveByUser(userID string) (*models.Subscription, error)
	Update(sub *models.Subscription) error
	UpdateStatus(id string, status models.SubscriptionStatus) error

	// ConsumeQuota atomically reserves up to requested units of the resource
	// against the row's remaining quota and increments the usage counter by
	// the granted amount, all under a row lock. Granted is
	// min(requested, remaining); for unlimited resources it equals requested.
	ConsumeQuota(userID string, resource models.QuotaResource, requested int) (*models.QuotaGrant, error)
	// ReleaseQuota returns n unconsumed units to the pool. Counters never
	// drop below zero.
	ReleaseQuota(subscriptionID string, resource models.QuotaResource, n int) error

	// ActivatePlan upserts the user's single subscription row: the limits
	// snapshot is overwritten from the plan, usage counters are zeroed and
	// the billing period restarts now.
	ActivatePlan(userID string, plan *models.Plan) (*models.Subscription, error)

	FindExpired(now time.Time) ([]models.Subscription, error)
}

type SubscriptionRepositoryImpl struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &SubscriptionRepositoryImpl{db: db}
}

func (r *SubscriptionRepositoryImpl) Create(sub *models.Subscription) error {
	return r.db.Create(sub).Error
}

func (r *SubscriptionRepositoryImpl) FindByUser(userID string) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.Preload("Plan").First(&sub, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	return &sub, nil
}

func (r *SubscriptionRepositoryImpl) FindActiveByUser(userID string) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.Preload("Plan").
		First(&sub, "user_id = ? AND status = ?", userID, models.SubscriptionStatusActive).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoActiveSubscription
		}
		return nil, err
	}
	return &sub, nil
}

func (r *SubscriptionRepositoryImpl) Update(sub *models.Subscription) error {
	return r.db.Save(sub).Error
}

func (r *SubscriptionRepositoryImpl) UpdateStatus(id string, status models.SubscriptionStatus) error {
	res := r.db.Model(&models.Subscription{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrSubscriptionNotFound
	}
	return nil
}

func (r *SubscriptionRepositoryImpl) ConsumeQuota(userID string, resource models.QuotaResource, requested int) (*models.QuotaGrant, error) {
	if requested < 0 {
		return nil, fmt.Errorf("negative quota request: %d", requested)
	}

	grant := &models.QuotaGrant{Resource: resource, Requested: requested}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var sub models.Subscription
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&sub, "user_id = ? AND status = ?", userID, models.SubscriptionStatusActive).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoActiveSubscription
			}
			return err
		}

		grant.SubscriptionID = sub.ID
		grant.Limit = sub.Limits.Limit(resource)

		if grant.Limit == models.Unlimited {
			grant.Granted = requested
		} else {
			remaining := sub.Remaining(resource)
			if remaining < requested {
				grant.Granted = remaining
			} else {
				grant.Granted = requested
			}
		}

		if grant.Granted == 0 {
			return nil
		}

		// The reservation is charged upfront; undelivered units come back
		// through ReleaseQuota after the send loop.
		col := resource.UsageColumn()
		return tx.Model(&models.Subscription{}).
			Where("id = ?", sub.ID).
			UpdateColumn(col, gorm.Expr(col+" + ?", grant.Granted)).Error
	})
	if err != nil {
		return nil, err
	}

	return grant, nil
}

func (r *SubscriptionRepositoryImpl) ReleaseQuota(subscriptionID string, resource models.QuotaResource, n int) error {
	if n <= 0 {
		return nil
	}
	col := resource.UsageColumn()
	return r.db.Model(&models.Subscription{}).
		Where("id = ?", subscriptionID).
		UpdateColumn(col, gorm.Expr("GREATEST("+col+" - ?, 0)", n)).Error
}

func (r *SubscriptionRepositoryImpl) ActivatePlan(userID string, plan *models.Plan) (*models.Subscription, error) {
	now := time.Now()
	end := now.AddDate(0, plan.PeriodMonths(), 0)

	sub := &models.Subscription{
		UserID: userID,
		PlanID: plan.ID,
		Status: models.SubscriptionStatusActive,
		Limits: plan.Limits,
		Usage: models.PlanUsage{
			LastResetDate: now,
		},
		StartDate: now,
		EndDate:   end,
		AutoRenew: true,
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Subscription
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&existing, "user_id = ?", userID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return tx.Create(sub).Error
			}
			return err
		}

		sub.ID = existing.ID
		sub.CreatedAt = existing.CreatedAt
		return tx.Save(sub).Error
	})
	if err != nil {
		return nil, err
	}

	return sub, nil
}

func (r *SubscriptionRepositoryImpl) FindExpired(now time.Time) ([]models.Subscription, error) {
	var subs []models.Subscription
	err := r.db.
		Where("status = ? AND end_date < ?", models.SubscriptionStatusActive, now).
		Find(&subs).Error
	return subs, err
}
