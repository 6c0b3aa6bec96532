package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"reachiq/internal/mailer"
	"reachiq/internal/models"
	"reachiq/internal/repositories"
)

// fakeSubscriptionRepo keeps a single subscription row in memory and
// mirrors the row-locked quota arithmetic of the real repository.
type fakeSubscriptionRepo struct {
	mu  sync.Mutex
	sub *models.Subscription
}

func newFakeSubscriptionRepo(sub *models.Subscription) *fakeSubscriptionRepo {
	if sub != nil && sub.ID == "" {
		sub.ID = "sub-1"
	}
	return &fakeSubscriptionRepo{sub: sub}
}

func (f *fakeSubscriptionRepo) Create(sub *models.Subscription) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sub = sub
	return nil
}

func (f *fakeSubscriptionRepo) FindByUser(userID string) (*models.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sub == nil || f.sub.UserID != userID {
		return nil, repositories.ErrSubscriptionNotFound
	}
	cp := *f.sub
	return &cp, nil
}

func (f *fakeSubscriptionRepo) FindActiveByUser(userID string) (*models.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sub == nil || f.sub.UserID != userID || !f.sub.Active() {
		return nil, repositories.ErrNoActiveSubscription
	}
	cp := *f.sub
	return &cp, nil
}

func (f *fakeSubscriptionRepo) Update(sub *models.Subscription) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sub = sub
	return nil
}

func (f *fakeSubscriptionRepo) UpdateStatus(id string, status models.SubscriptionStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sub == nil || f.sub.ID != id {
		return repositories.ErrSubscriptionNotFound
	}
	f.sub.Status = status
	return nil
}

func (f *fakeSubscriptionRepo) ConsumeQuota(userID string, resource models.QuotaResource, requested int) (*models.QuotaGrant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if requested < 0 {
		return nil, fmt.Errorf("negative quota request: %d", requested)
	}
	if f.sub == nil || f.sub.UserID != userID || !f.sub.Active() {
		return nil, repositories.ErrNoActiveSubscription
	}

	grant := &models.QuotaGrant{
		SubscriptionID: f.sub.ID,
		Resource:       resource,
		Requested:      requested,
		Limit:          f.sub.Limits.Limit(resource),
	}

	if grant.Limit == models.Unlimited {
		grant.Granted = requested
	} else {
		remaining := f.sub.Remaining(resource)
		if remaining < requested {
			grant.Granted = remaining
		} else {
			grant.Granted = requested
		}
	}

	f.addUsage(resource, grant.Granted)
	return grant, nil
}

func (f *fakeSubscriptionRepo) ReleaseQuota(subscriptionID string, resource models.QuotaResource, n int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if n <= 0 {
		return nil
	}
	if f.sub == nil || f.sub.ID != subscriptionID {
		return repositories.ErrSubscriptionNotFound
	}
	f.addUsage(resource, -n)
	return nil
}

func (f *fakeSubscriptionRepo) addUsage(resource models.QuotaResource, delta int) {
	var counter *int
	switch resource {
	case models.ResourceEmail:
		counter = &f.sub.Usage.EmailsSent
	case models.ResourceSms:
		counter = &f.sub.Usage.SmsSent
	case models.ResourceSmtpConfig:
		counter = &f.sub.Usage.SmtpConfigsUsed
	case models.ResourceAndroidGateway:
		counter = &f.sub.Usage.AndroidGatewaysUsed
	}
	*counter += delta
	if *counter < 0 {
		*counter = 0
	}
}

func (f *fakeSubscriptionRepo) usage(resource models.QuotaResource) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sub.Usage.Used(resource)
}

func (f *fakeSubscriptionRepo) ActivatePlan(userID string, plan *models.Plan) (*models.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := time.Now()
	sub := &models.Subscription{
		UserID:    userID,
		PlanID:    plan.ID,
		Status:    models.SubscriptionStatusActive,
		Limits:    plan.Limits,
		Usage:     models.PlanUsage{LastResetDate: now},
		StartDate: now,
		EndDate:   now.AddDate(0, plan.PeriodMonths(), 0),
		AutoRenew: true,
	}
	if f.sub != nil && f.sub.UserID == userID {
		sub.ID = f.sub.ID
	} else {
		sub.ID = "sub-1"
	}
	f.sub = sub
	cp := *sub
	return &cp, nil
}

func (f *fakeSubscriptionRepo) FindExpired(now time.Time) ([]models.Subscription, error) {
	return nil, nil
}

var _ repositories.SubscriptionRepository = (*fakeSubscriptionRepo)(nil)

// fakeSmtpRepo holds SMTP configs in memory.
type fakeSmtpRepo struct {
	configs map[string]*models.SmtpConfig
	next    int
}

func newFakeSmtpRepo() *fakeSmtpRepo {
	return &fakeSmtpRepo{configs: map[string]*models.SmtpConfig{}}
}

func (f *fakeSmtpRepo) Create(cfg *models.SmtpConfig) error {
	f.next++
	if cfg.ID == "" {
		cfg.ID = fmt.Sprintf("smtp-%d", f.next)
	}
	f.configs[cfg.ID] = cfg
	return nil
}

func (f *fakeSmtpRepo) FindByIDForUser(id, userID string) (*models.SmtpConfig, error) {
	cfg, ok := f.configs[id]
	if !ok || cfg.UserID != userID {
		return nil, repositories.ErrSmtpConfigNotFound
	}
	return cfg, nil
}

func (f *fakeSmtpRepo) FindByUser(userID string) ([]models.SmtpConfig, error) {
	var out []models.SmtpConfig
	for _, cfg := range f.configs {
		if cfg.UserID == userID {
			out = append(out, *cfg)
		}
	}
	return out, nil
}

func (f *fakeSmtpRepo) CountByUser(userID string) (int64, error) {
	var n int64
	for _, cfg := range f.configs {
		if cfg.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (f *fakeSmtpRepo) Update(cfg *models.SmtpConfig) error {
	f.configs[cfg.ID] = cfg
	return nil
}

func (f *fakeSmtpRepo) Delete(id, userID string) error {
	cfg, ok := f.configs[id]
	if !ok || cfg.UserID != userID {
		return repositories.ErrSmtpConfigNotFound
	}
	delete(f.configs, id)
	return nil
}

var _ repositories.SmtpRepository = (*fakeSmtpRepo)(nil)

// fakeCampaignRepo records created and updated campaigns.
type fakeCampaignRepo struct {
	campaigns map[string]*models.Campaign
	next      int
}

func newFakeCampaignRepo() *fakeCampaignRepo {
	return &fakeCampaignRepo{campaigns: map[string]*models.Campaign{}}
}

func (f *fakeCampaignRepo) Create(c *models.Campaign) error {
	f.next++
	c.ID = fmt.Sprintf("camp-%d", f.next)
	f.campaigns[c.ID] = c
	return nil
}

func (f *fakeCampaignRepo) FindByIDForUser(id, userID string) (*models.Campaign, error) {
	c, ok := f.campaigns[id]
	if !ok || c.UserID != userID {
		return nil, repositories.ErrCampaignNotFound
	}
	return c, nil
}

func (f *fakeCampaignRepo) FindByUser(userID string, limit, offset int) ([]models.Campaign, error) {
	var out []models.Campaign
	for _, c := range f.campaigns {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeCampaignRepo) CountByUser(userID string) (int64, error) {
	out, _ := f.FindByUser(userID, 0, 0)
	return int64(len(out)), nil
}

func (f *fakeCampaignRepo) Update(c *models.Campaign) error {
	f.campaigns[c.ID] = c
	return nil
}

func (f *fakeCampaignRepo) Delete(id, userID string) error {
	if _, err := f.FindByIDForUser(id, userID); err != nil {
		return err
	}
	delete(f.campaigns, id)
	return nil
}

var _ repositories.CampaignRepository = (*fakeCampaignRepo)(nil)

// fakeSender fails delivery for addresses listed in failFor. A non-nil
// dialErr refuses the batch connection outright.
type fakeSender struct {
	sent    []string
	failFor map[string]bool
	dialErr error
	dials   int
	closed  int
}

func newFakeSender(failFor ...string) *fakeSender {
	m := map[string]bool{}
	for _, addr := range failFor {
		m[addr] = true
	}
	return &fakeSender{failFor: m}
}

func (f *fakeSender) Dial(cfg *models.SmtpConfig) (mailer.BatchSender, error) {
	if f.dialErr != nil {
		return nil, f.dialErr
	}
	f.dials++
	return f, nil
}

func (f *fakeSender) Send(msg *mailer.Message) error {
	if f.failFor[msg.To] {
		return fmt.Errorf("smtp: mailbox unavailable")
	}
	f.sent = append(f.sent, msg.To)
	return nil
}

func (f *fakeSender) Close() error {
	f.closed++
	return nil
}

var _ mailer.Sender = (*fakeSender)(nil)
var _ mailer.BatchSender = (*fakeSender)(nil)

// fakeGatewayClient reports a fixed online state and can fail numbers.
type fakeGatewayClient struct {
	online  bool
	sent    []string
	failFor map[string]bool
}

func newFakeGatewayClient(online bool, failFor ...string) *fakeGatewayClient {
	m := map[string]bool{}
	for _, n := range failFor {
		m[n] = true
	}
	return &fakeGatewayClient{online: online, failFor: m}
}

func (f *fakeGatewayClient) Status(ctx context.Context, gw *models.SmsGatewayConfig) error {
	if !f.online {
		return fmt.Errorf("gateway unreachable: connection refused")
	}
	return nil
}

func (f *fakeGatewayClient) Send(ctx context.Context, gw *models.SmsGatewayConfig, phone, message string) error {
	if f.failFor[phone] {
		return fmt.Errorf("gateway returned status 500")
	}
	f.sent = append(f.sent, phone)
	return nil
}
