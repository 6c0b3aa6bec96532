package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"reachiq/internal/dto"
	"reachiq/internal/models"
	"reachiq/internal/repositories"
	"reachiq/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGatewayRepo struct {
	gateways map[string]*models.SmsGatewayConfig
}

func newFakeGatewayRepo(gateways ...*models.SmsGatewayConfig) *fakeGatewayRepo {
	m := map[string]*models.SmsGatewayConfig{}
	for _, gw := range gateways {
		m[gw.ID] = gw
	}
	return &fakeGatewayRepo{gateways: m}
}

func (f *fakeGatewayRepo) Create(gw *models.SmsGatewayConfig) error {
	if gw.ID == "" {
		gw.ID = fmt.Sprintf("gw-%d", len(f.gateways)+1)
	}
	f.gateways[gw.ID] = gw
	return nil
}

func (f *fakeGatewayRepo) FindByIDForUser(id, userID string) (*models.SmsGatewayConfig, error) {
	gw, ok := f.gateways[id]
	if !ok || gw.UserID != userID {
		return nil, repositories.ErrGatewayNotFound
	}
	return gw, nil
}

func (f *fakeGatewayRepo) FindByUser(userID string) ([]models.SmsGatewayConfig, error) {
	var out []models.SmsGatewayConfig
	for _, gw := range f.gateways {
		if gw.UserID == userID {
			out = append(out, *gw)
		}
	}
	return out, nil
}

func (f *fakeGatewayRepo) CountByUser(userID string) (int64, error) {
	out, _ := f.FindByUser(userID)
	return int64(len(out)), nil
}

func (f *fakeGatewayRepo) Update(gw *models.SmsGatewayConfig) error {
	f.gateways[gw.ID] = gw
	return nil
}

func (f *fakeGatewayRepo) UpdateStatus(id string, status models.GatewayStatus) error {
	gw, ok := f.gateways[id]
	if !ok {
		return repositories.ErrGatewayNotFound
	}
	gw.Status = status
	return nil
}

func (f *fakeGatewayRepo) Delete(id, userID string) error {
	gw, ok := f.gateways[id]
	if !ok || gw.UserID != userID {
		return repositories.ErrGatewayNotFound
	}
	delete(f.gateways, id)
	return nil
}

var _ repositories.GatewayRepository = (*fakeGatewayRepo)(nil)

type fakeSmsCampaignRepo struct {
	campaigns map[string]*models.SmsCampaign
	next      int
}

func newFakeSmsCampaignRepo() *fakeSmsCampaignRepo {
	return &fakeSmsCampaignRepo{campaigns: map[string]*models.SmsCampaign{}}
}

func (f *fakeSmsCampaignRepo) Create(c *models.SmsCampaign) error {
	f.next++
	c.ID = fmt.Sprintf("sms-camp-%d", f.next)
	f.campaigns[c.ID] = c
	return nil
}

func (f *fakeSmsCampaignRepo) FindByIDForUser(id, userID string) (*models.SmsCampaign, error) {
	c, ok := f.campaigns[id]
	if !ok || c.UserID != userID {
		return nil, repositories.ErrCampaignNotFound
	}
	return c, nil
}

func (f *fakeSmsCampaignRepo) FindByUser(userID string, limit, offset int) ([]models.SmsCampaign, error) {
	var out []models.SmsCampaign
	for _, c := range f.campaigns {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeSmsCampaignRepo) CountByUser(userID string) (int64, error) {
	out, _ := f.FindByUser(userID, 0, 0)
	return int64(len(out)), nil
}

func (f *fakeSmsCampaignRepo) Update(c *models.SmsCampaign) error {
	f.campaigns[c.ID] = c
	return nil
}

func (f *fakeSmsCampaignRepo) Delete(id, userID string) error {
	if _, err := f.FindByIDForUser(id, userID); err != nil {
		return err
	}
	delete(f.campaigns, id)
	return nil
}

var _ repositories.SmsCampaignRepository = (*fakeSmsCampaignRepo)(nil)

func smsFixture(online bool, limits models.PlanLimits, usage models.PlanUsage, failFor ...string) (*fakeSubscriptionRepo, *fakeGatewayRepo, *fakeGatewayClient, SmsCampaignService) {
	subRepo := newFakeSubscriptionRepo(activeSubscription(limits, usage))
	gwRepo := newFakeGatewayRepo(&models.SmsGatewayConfig{
		BaseModel: models.BaseModel{ID: "gw-1"},
		UserID:    "user-1",
		IP:        "192.168.1.50",
		Port:      8080,
		Status:    models.GatewayStatusDisconnected,
	})
	client := newFakeGatewayClient(online, failFor...)
	svc := NewSmsCampaignService(newFakeSmsCampaignRepo(), gwRepo, NewQuotaService(subRepo), client)
	return subRepo, gwRepo, client, svc
}

func smsRequest(numbers ...string) *dto.SendSmsCampaignRequest {
	return &dto.SendSmsCampaignRequest{
		Title:     "Promo",
		GatewayID: "gw-1",
		Numbers:   numbers,
		Message:   "50% off today",
	}
}

func TestSmsCampaignSendAllDelivered(t *testing.T) {
	subRepo, gwRepo, client, svc := smsFixture(true,
		models.PlanLimits{SmsPerMonth: 100}, models.PlanUsage{})

	result, err := svc.Send(context.Background(), "user-1", smsRequest("+911111", "+912222"))
	require.NoError(t, err)

	assert.Equal(t, "sent", result.Status)
	assert.Equal(t, 2, result.SentCount)
	assert.Equal(t, []string{"+911111", "+912222"}, client.sent)
	assert.Equal(t, 2, subRepo.usage(models.ResourceSms))
	assert.Equal(t, models.GatewayStatusConnected, gwRepo.gateways["gw-1"].Status)
}

func TestSmsCampaignSendOfflineGateway(t *testing.T) {
	subRepo, gwRepo, _, svc := smsFixture(false,
		models.PlanLimits{SmsPerMonth: 100}, models.PlanUsage{})

	_, err := svc.Send(context.Background(), "user-1", smsRequest("+911111"))
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeDeliveryFailed, appErr.Code)
	// Transport problems are reported as a client-actionable 400.
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPCode)
	// No quota consumed when the probe fails.
	assert.Equal(t, 0, subRepo.usage(models.ResourceSms))
	assert.Equal(t, models.GatewayStatusDisconnected, gwRepo.gateways["gw-1"].Status)
}

func TestSmsCampaignSendPartitionsAtQuotaBoundary(t *testing.T) {
	subRepo, _, client, svc := smsFixture(true,
		models.PlanLimits{SmsPerMonth: 100}, models.PlanUsage{SmsSent: 99})

	result, err := svc.Send(context.Background(), "user-1", smsRequest("+911111", "+912222", "+913333"))
	require.NoError(t, err)

	assert.Equal(t, "partial", result.Status)
	assert.Equal(t, 1, result.SentCount)
	assert.Equal(t, 2, result.BlockedCount)
	assert.Equal(t, []string{"+911111"}, client.sent)
	assert.Equal(t, 100, subRepo.usage(models.ResourceSms))

	for _, r := range result.Results[1:] {
		assert.Equal(t, "blocked", r.Status)
		assert.Equal(t, "SMS limit reached", r.Reason)
	}
}

func TestSmsCampaignSendContinuesAfterFailure(t *testing.T) {
	subRepo, _, client, svc := smsFixture(true,
		models.PlanLimits{SmsPerMonth: 100}, models.PlanUsage{},
		"+912222")

	result, err := svc.Send(context.Background(), "user-1", smsRequest("+911111", "+912222", "+913333"))
	require.NoError(t, err)

	assert.Equal(t, "partial", result.Status)
	assert.Equal(t, 2, result.SentCount)
	assert.Equal(t, 1, result.FailedCount)
	assert.Equal(t, []string{"+911111", "+913333"}, client.sent)
	assert.Equal(t, 2, subRepo.usage(models.ResourceSms))
}

func TestSmsCampaignSendRefusedWithoutSubscription(t *testing.T) {
	subRepo := newFakeSubscriptionRepo(nil)
	gwRepo := newFakeGatewayRepo(&models.SmsGatewayConfig{
		BaseModel: models.BaseModel{ID: "gw-1"},
		UserID:    "user-1",
		IP:        "192.168.1.50",
		Port:      8080,
	})
	svc := NewSmsCampaignService(newFakeSmsCampaignRepo(), gwRepo, NewQuotaService(subRepo), newFakeGatewayClient(true))

	_, err := svc.Send(context.Background(), "user-1", smsRequest("+911111"))
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeNoActiveSubscription, appErr.Code)
}

func TestSmsCampaignUpdateAndDelete(t *testing.T) {
	_, _, _, svc := smsFixture(true, models.PlanLimits{SmsPerMonth: 100}, models.PlanUsage{})

	result, err := svc.Send(context.Background(), "user-1", smsRequest("+911111"))
	require.NoError(t, err)

	title := "Promo (archived)"
	updated, err := svc.Update(context.Background(), "user-1", result.CampaignID,
		&dto.UpdateSmsCampaignRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Promo (archived)", updated.Title)
	assert.Equal(t, 1, updated.SentCount)

	require.NoError(t, svc.Delete(context.Background(), "user-1", result.CampaignID))
	_, err = svc.Get(context.Background(), "user-1", result.CampaignID)
	require.Error(t, err)
}

func TestSmsCampaignSendPersistsDeliveryResults(t *testing.T) {
	subRepo := newFakeSubscriptionRepo(activeSubscription(
		models.PlanLimits{SmsPerMonth: 100}, models.PlanUsage{}))
	gwRepo := newFakeGatewayRepo(&models.SmsGatewayConfig{
		BaseModel: models.BaseModel{ID: "gw-1"},
		UserID:    "user-1",
		IP:        "192.168.1.50",
		Port:      8080,
	})
	campRepo := newFakeSmsCampaignRepo()
	svc := NewSmsCampaignService(campRepo, gwRepo, NewQuotaService(subRepo), newFakeGatewayClient(true, "+912222"))

	result, err := svc.Send(context.Background(), "user-1", smsRequest("+911111", "+912222"))
	require.NoError(t, err)

	stored := campRepo.campaigns[result.CampaignID]
	require.NotNil(t, stored)
	require.NotEmpty(t, stored.Results)

	var persisted []models.DeliveryResult
	require.NoError(t, json.Unmarshal(stored.Results, &persisted))
	require.Len(t, persisted, 2)
	assert.Equal(t, "sent", persisted[0].Status)
	assert.Equal(t, "failed", persisted[1].Status)
}
