package services

import (
	"context"
	"errors"

	"reachiq/internal/logger"
	"reachiq/internal/models"
	"reachiq/internal/repositories"
	"reachiq/pkg/apperrors"
)

// QuotaService is the single gate in front of every metered resource.
// Nothing that counts against a plan is created or sent without a grant
// from Authorize.
type QuotaService interface {
	// Authorize reserves up to requested units of a resource. The grant's
	// Granted units are already charged to the usage counter; callers must
	// hand back whatever they do not deliver via Release. With no active
	// subscription every request is refused.
	Authorize(ctx context.Context, userID string, resource models.QuotaResource, requested int) (*models.QuotaGrant, error)
	// AuthorizeOne reserves exactly one unit or fails with the resource's
	// limit error. Used for config-slot resources.
	AuthorizeOne(ctx context.Context, userID string, resource models.QuotaResource) (*models.QuotaGrant, error)
	// Release returns n reserved-but-unconsumed units.
	Release(ctx context.Context, grant *models.QuotaGrant, n int) error
}

type quotaService struct {
	subscriptions repositories.SubscriptionRepository
}

func NewQuotaService(subscriptions repositories.SubscriptionRepository) QuotaService {
	return &quotaService{subscriptions: subscriptions}
}

func (s *quotaService) Authorize(ctx context.Context, userID string, resource models.QuotaResource, requested int) (*models.QuotaGrant, error) {
	grant, err := s.subscriptions.ConsumeQuota(userID, resource, requested)
	if err != nil {
		if errors.Is(err, repositories.ErrNoActiveSubscription) {
			return nil, apperrors.NewNoActiveSubscriptionError()
		}
		return nil, apperrors.InternalError(err)
	}

	logger.CtxDebug(ctx, "quota authorized",
		"resource", string(resource),
		"requested", grant.Requested,
		"granted", grant.Granted,
		"limit", grant.Limit,
	)

	if grant.Granted == 0 && grant.Requested > 0 {
		return nil, apperrors.NewLimitExceededError(resource.LimitMessage(grant.Limit))
	}

	return grant, nil
}

func (s *quotaService) AuthorizeOne(ctx context.Context, userID string, resource models.QuotaResource) (*models.QuotaGrant, error) {
	return s.Authorize(ctx, userID, resource, 1)
}

func (s *quotaService) Release(ctx context.Context, grant *models.QuotaGrant, n int) error {
	if grant == nil || n <= 0 {
		return nil
	}
	if err := s.subscriptions.ReleaseQuota(grant.SubscriptionID, grant.Resource, n); err != nil {
		logger.CtxWithError(ctx, "failed to release quota", err,
			"subscription_id", grant.SubscriptionID,
			"resource", string(grant.Resource),
			"units", n,
		)
		return err
	}
	return nil
}
