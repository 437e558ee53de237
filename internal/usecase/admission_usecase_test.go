package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-clinic-dashboard/config"
	"go-clinic-dashboard/internal/delivery/dto"
	"go-clinic-dashboard/internal/domain/entity"
	"go-clinic-dashboard/internal/resource"
	"go-clinic-dashboard/internal/service"
	"go-clinic-dashboard/pkg/display"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type admissionFixture struct {
	gateway *mockAdmissionGateway
	repo    *mockAdmissionRepository
	journal *recordingJournal
	usecase *admissionUsecase
}

func newAdmissionFixture(t *testing.T) *admissionFixture {
	log, _ := test.NewNullLogger()
	registry := resource.NewRegistry(time.Minute, log)
	t.Cleanup(registry.Stop)

	f := &admissionFixture{
		gateway: new(mockAdmissionGateway),
		repo:    new(mockAdmissionRepository),
		journal: &recordingJournal{},
	}
	insights := service.NewRuleInsightProvider(config.InsightConfig{}, time.UTC)
	uc := NewAdmissionUsecase(f.gateway, f.repo, registry, f.journal, insights, 0, time.UTC, log).(*admissionUsecase)
	uc.now = func() time.Time { return time.Date(2026, 3, 20, 14, 30, 0, 0, time.UTC) }
	f.usecase = uc
	return f
}

func riskScore(v float64) *float64 {
	return &v
}

func TestAdmissionUsecase_DischargeWithExplicitDate(t *testing.T) {
	f := newAdmissionFixture(t)
	ctx := context.Background()

	f.gateway.On("Action", ctx, entity.ID("5"), "discharge_patient", mock.MatchedBy(func(p map[string]interface{}) bool {
		return p["discharge_date"] == "2026-03-19T10:15:00" &&
			p["discharge_summary"] == "Recovered well, stable vitals" &&
			p["discharge_disposition"] == "home"
	})).Return(nil).Once()

	err := f.usecase.Discharge(ctx, "sess-1", "5", &dto.DischargeRequest{
		DischargeSummary:     "Recovered well, stable vitals",
		DischargeDisposition: "home",
		DischargeDate:        "2026-03-19",
		DischargeTime:        "10:15",
	})
	require.NoError(t, err)
	require.Len(t, f.journal.mutations, 1)
	assert.Equal(t, entity.ActivityActionDischarge, f.journal.mutations[0].Action)
	assert.Equal(t, entity.ID("5"), f.journal.mutations[0].RecordID)
	f.gateway.AssertExpectations(t)
}

func TestAdmissionUsecase_DischargeDefaultsToNow(t *testing.T) {
	f := newAdmissionFixture(t)
	ctx := context.Background()

	f.gateway.On("Action", ctx, entity.ID("5"), "discharge_patient", mock.MatchedBy(func(p map[string]interface{}) bool {
		_, hasDisposition := p["discharge_disposition"]
		return p["discharge_date"] == "2026-03-20T14:30:00" && !hasDisposition
	})).Return(nil).Once()

	require.NoError(t, f.usecase.Discharge(ctx, "sess-1", "5", &dto.DischargeRequest{DischargeSummary: "Stable, going home"}))
	f.gateway.AssertExpectations(t)
}

func TestAdmissionUsecase_DischargeFailureNotJournaled(t *testing.T) {
	f := newAdmissionFixture(t)
	ctx := context.Background()

	f.gateway.On("Action", ctx, entity.ID("5"), "discharge_patient", mock.Anything).Return(errors.New("boom")).Once()

	err := f.usecase.Discharge(ctx, "sess-1", "5", &dto.DischargeRequest{DischargeSummary: "Stable, going home"})
	assert.Error(t, err)
	assert.Empty(t, f.journal.mutations)
}

func TestAdmissionUsecase_JourneySortsTimeline(t *testing.T) {
	f := newAdmissionFixture(t)

	f.gateway.On("Get", mock.Anything, entity.ID("8")).Return(&entity.Admission{
		ID:            "8",
		AdmissionDate: "2026-03-15T09:00:00",
		AIRiskScore:   riskScore(7.5),
		Status:        entity.AdmissionStatusInTreatment,
	}, nil).Once()
	f.repo.On("Timeline", mock.Anything, entity.ID("8")).Return([]entity.TimelineEvent{
		{EventType: "medication", Title: "Antibiotics", Timestamp: "2026-03-16T08:00:00"},
		{EventType: "note", Title: "Undated", Timestamp: ""},
		{EventType: "admission", Title: "Admitted", Timestamp: "2026-03-15T09:00:00Z"},
		{EventType: "lab_result", Title: "CBC", Timestamp: "2026-03-15T12:00:00", Badge: display.Danger},
	}, nil).Once()

	journey, err := f.usecase.Journey(context.Background(), "8")
	require.NoError(t, err)

	titles := make([]string, len(journey.Timeline))
	for i, e := range journey.Timeline {
		titles[i] = e.Title
	}
	assert.Equal(t, []string{"Admitted", "CBC", "Antibiotics", "Undated"}, titles)
	assert.Equal(t, display.Primary, journey.Timeline[0].Badge)
	assert.Equal(t, display.Danger, journey.Timeline[1].Badge)
	assert.Equal(t, display.Success, journey.Timeline[2].Badge)
	assert.Equal(t, display.Secondary, journey.Timeline[3].Badge)
	assert.Equal(t, display.Warning, journey.StatusBadge)
	assert.Equal(t, display.Danger, journey.RiskBadge)
	assert.Equal(t, "5 days", journey.LengthOfStay)
}

func TestAdmissionUsecase_JourneyPropagatesFailure(t *testing.T) {
	f := newAdmissionFixture(t)
	notFound := errors.New("not found")

	f.gateway.On("Get", mock.Anything, entity.ID("8")).Return(nil, notFound).Once()
	f.repo.On("Timeline", mock.Anything, entity.ID("8")).Return([]entity.TimelineEvent{}, nil).Maybe()

	_, err := f.usecase.Journey(context.Background(), "8")
	assert.ErrorIs(t, err, notFound)
}

func TestAdmissionUsecase_MissingAdmissionIsNotFound(t *testing.T) {
	f := newAdmissionFixture(t)

	f.gateway.On("Get", mock.Anything, entity.ID("8")).Return(nil, nil)
	f.repo.On("Timeline", mock.Anything, entity.ID("8")).Return([]entity.TimelineEvent{}, nil).Maybe()

	journey, err := f.usecase.Journey(context.Background(), "8")
	assert.Nil(t, journey)
	assert.ErrorIs(t, err, resource.ErrRecordNotFound)

	resp, err := f.usecase.Insights(context.Background(), "8")
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, resource.ErrRecordNotFound)
}

func TestAdmissionUsecase_Insights(t *testing.T) {
	f := newAdmissionFixture(t)

	f.gateway.On("Get", mock.Anything, entity.ID("2")).Return(&entity.Admission{
		ID:            "2",
		AdmissionDate: "2026-03-19",
		AIRiskScore:   riskScore(9),
		Status:        entity.AdmissionStatusAdmitted,
	}, nil).Once()

	resp, err := f.usecase.Insights(context.Background(), "2")
	require.NoError(t, err)
	assert.Equal(t, "rules", resp.Source)
	require.NotEmpty(t, resp.Insights)
	assert.Equal(t, entity.InsightHigh, resp.Insights[0].Severity)
}

func TestAdmissionUsecase_HighRisk(t *testing.T) {
	f := newAdmissionFixture(t)

	f.repo.On("HighRisk", mock.Anything, display.HighRiskScore).Return([]entity.Admission{
		{ID: "1", PatientName: "A", AIRiskScore: riskScore(9.1), Status: entity.AdmissionStatusAdmitted, AdmissionDate: "2026-03-18"},
	}, nil).Once()

	rows, err := f.usecase.HighRisk(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, display.Danger, rows[0].RiskBadge)
	assert.Equal(t, "2 days", rows[0].LengthOfStay)

	_, err = f.usecase.HighRisk(context.Background(), riskScore(11))
	assert.ErrorIs(t, err, ErrInvalidRiskScore)
}

func TestAdmissionUsecase_QualityMetrics(t *testing.T) {
	f := newAdmissionFixture(t)

	f.repo.On("QualityMetrics", mock.Anything, DefaultQualityPeriodDays).Return(&entity.QualityMetrics{
		PeriodDays:          30,
		AverageLengthOfStay: 4.6,
	}, nil).Once()

	resp, err := f.usecase.QualityMetrics(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 30, resp.PeriodDays)
	assert.Equal(t, "5 days", resp.AverageLengthOfStayDisplay)

	_, err = f.usecase.QualityMetrics(context.Background(), 400)
	assert.ErrorIs(t, err, ErrInvalidPeriod)
	_, err = f.usecase.QualityMetrics(context.Background(), -1)
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}
