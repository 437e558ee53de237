package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"go-clinic-dashboard/internal/delivery/dto"
	"go-clinic-dashboard/internal/domain/entity"
	"go-clinic-dashboard/internal/resource"
	"go-clinic-dashboard/internal/service"
	"go-clinic-dashboard/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockScreenUsecase struct {
	mock.Mock
}

func (m *mockScreenUsecase) Kinds(session *entity.Session) []dto.KindResponse {
	args := m.Called(session)
	return args.Get(0).([]dto.KindResponse)
}

func (m *mockScreenUsecase) Mount(ctx context.Context, sessionID, kind string) (*resource.State, error) {
	args := m.Called(ctx, sessionID, kind)
	return stateArg(args, 0), args.Error(1)
}

func (m *mockScreenUsecase) Unmount(sessionID, kind string) bool {
	return m.Called(sessionID, kind).Bool(0)
}

func (m *mockScreenUsecase) View(sessionID, kind string, filter *entity.FilterState) (*resource.State, error) {
	args := m.Called(sessionID, kind, filter)
	return stateArg(args, 0), args.Error(1)
}

func (m *mockScreenUsecase) Refresh(ctx context.Context, sessionID, kind string, query url.Values) (*resource.State, error) {
	args := m.Called(ctx, sessionID, kind, query)
	return stateArg(args, 0), args.Error(1)
}

func (m *mockScreenUsecase) OpenModal(sessionID, kind string, req *dto.OpenModalRequest) (*resource.State, error) {
	args := m.Called(sessionID, kind, req)
	return stateArg(args, 0), args.Error(1)
}

func (m *mockScreenUsecase) CloseModal(sessionID, kind string) (*resource.State, error) {
	args := m.Called(sessionID, kind)
	return stateArg(args, 0), args.Error(1)
}

func (m *mockScreenUsecase) UpdateDraft(sessionID, kind string, values map[string]interface{}) (*resource.State, error) {
	args := m.Called(sessionID, kind, values)
	return stateArg(args, 0), args.Error(1)
}

func (m *mockScreenUsecase) SubmitDraft(ctx context.Context, sessionID, kind string) (*resource.State, error) {
	args := m.Called(ctx, sessionID, kind)
	return stateArg(args, 0), args.Error(1)
}

func (m *mockScreenUsecase) SetStatus(ctx context.Context, sessionID, kind string, id entity.ID, status string) (*resource.State, error) {
	args := m.Called(ctx, sessionID, kind, id, status)
	return stateArg(args, 0), args.Error(1)
}

func (m *mockScreenUsecase) Deactivate(ctx context.Context, sessionID, kind string, id entity.ID) (*resource.State, error) {
	args := m.Called(ctx, sessionID, kind, id)
	return stateArg(args, 0), args.Error(1)
}

func (m *mockScreenUsecase) Alert(sessionID, kind string) (*entity.Alert, error) {
	args := m.Called(sessionID, kind)
	alert, _ := args.Get(0).(*entity.Alert)
	return alert, args.Error(1)
}

func (m *mockScreenUsecase) DismissAlert(sessionID, kind string, id uuid.UUID) error {
	return m.Called(sessionID, kind, id).Error(0)
}

func stateArg(args mock.Arguments, i int) *resource.State {
	state, _ := args.Get(i).(*resource.State)
	return state
}

type mockAdmissionUsecase struct {
	mock.Mock
}

func (m *mockAdmissionUsecase) Discharge(ctx context.Context, sessionID string, id entity.ID, req *dto.DischargeRequest) error {
	return m.Called(ctx, sessionID, id, req).Error(0)
}

func (m *mockAdmissionUsecase) Journey(ctx context.Context, id entity.ID) (*entity.PatientJourney, error) {
	args := m.Called(ctx, id)
	journey, _ := args.Get(0).(*entity.PatientJourney)
	return journey, args.Error(1)
}

func (m *mockAdmissionUsecase) Insights(ctx context.Context, id entity.ID) (*dto.InsightResponse, error) {
	args := m.Called(ctx, id)
	insights, _ := args.Get(0).(*dto.InsightResponse)
	return insights, args.Error(1)
}

func (m *mockAdmissionUsecase) HighRisk(ctx context.Context, minScore *float64) ([]dto.AdmissionSummary, error) {
	args := m.Called(ctx, minScore)
	summaries, _ := args.Get(0).([]dto.AdmissionSummary)
	return summaries, args.Error(1)
}

func (m *mockAdmissionUsecase) QualityMetrics(ctx context.Context, days int) (*dto.QualityMetricsResponse, error) {
	args := m.Called(ctx, days)
	metrics, _ := args.Get(0).(*dto.QualityMetricsResponse)
	return metrics, args.Error(1)
}

type invalidatorStub struct {
	invalidated []string
	err         error
}

func (s *invalidatorStub) InvalidateSession(ctx context.Context, sessionID string) error {
	s.invalidated = append(s.invalidated, sessionID)
	return s.err
}

func newTestResponder() (*ErrorResponder, *invalidatorStub, *test.Hook) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	sessions := &invalidatorStub{}
	return NewErrorResponder(sessions, log), sessions, hook
}

// authedRequest builds a request carrying session s1 and the given route vars.
func authedRequest(method, target string, body string, vars map[string]string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	session := &entity.Session{ID: "s1", Username: "reception"}
	req = req.WithContext(service.WithSession(req.Context(), session))
	return mux.SetURLVars(req, vars)
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var body response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}
