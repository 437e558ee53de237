package usecase

import (
	"context"
	"net/url"
	"time"

	"go-clinic-dashboard/internal/domain/entity"
	"go-clinic-dashboard/internal/domain/repository"
	"go-clinic-dashboard/internal/resource"

	"github.com/stretchr/testify/mock"
)

type mockAuthGateway struct {
	mock.Mock
}

func (m *mockAuthGateway) Login(ctx context.Context, username, password string) (*repository.LoginResult, error) {
	args := m.Called(ctx, username, password)
	result, _ := args.Get(0).(*repository.LoginResult)
	return result, args.Error(1)
}

type mockSessionRepository struct {
	mock.Mock
}

func (m *mockSessionRepository) Save(ctx context.Context, session *entity.Session, ttl time.Duration) error {
	return m.Called(ctx, session, ttl).Error(0)
}

func (m *mockSessionRepository) FindByID(ctx context.Context, id string) (*entity.Session, error) {
	args := m.Called(ctx, id)
	session, _ := args.Get(0).(*entity.Session)
	return session, args.Error(1)
}

func (m *mockSessionRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockAdmissionGateway struct {
	mock.Mock
}

func (m *mockAdmissionGateway) List(ctx context.Context, query url.Values) ([]entity.Admission, error) {
	args := m.Called(ctx, query)
	rows, _ := args.Get(0).([]entity.Admission)
	return rows, args.Error(1)
}

func (m *mockAdmissionGateway) Get(ctx context.Context, id entity.ID) (*entity.Admission, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*entity.Admission)
	return a, args.Error(1)
}

func (m *mockAdmissionGateway) Create(ctx context.Context, payload map[string]interface{}) (*entity.Admission, error) {
	args := m.Called(ctx, payload)
	a, _ := args.Get(0).(*entity.Admission)
	return a, args.Error(1)
}

func (m *mockAdmissionGateway) Update(ctx context.Context, id entity.ID, payload map[string]interface{}) (*entity.Admission, error) {
	args := m.Called(ctx, id, payload)
	a, _ := args.Get(0).(*entity.Admission)
	return a, args.Error(1)
}

func (m *mockAdmissionGateway) Patch(ctx context.Context, id entity.ID, payload map[string]interface{}) (*entity.Admission, error) {
	args := m.Called(ctx, id, payload)
	a, _ := args.Get(0).(*entity.Admission)
	return a, args.Error(1)
}

func (m *mockAdmissionGateway) Action(ctx context.Context, id entity.ID, action string, payload map[string]interface{}) error {
	return m.Called(ctx, id, action, payload).Error(0)
}

type mockAdmissionRepository struct {
	mock.Mock
}

func (m *mockAdmissionRepository) Timeline(ctx context.Context, id entity.ID) ([]entity.TimelineEvent, error) {
	args := m.Called(ctx, id)
	events, _ := args.Get(0).([]entity.TimelineEvent)
	return events, args.Error(1)
}

func (m *mockAdmissionRepository) QualityMetrics(ctx context.Context, days int) (*entity.QualityMetrics, error) {
	args := m.Called(ctx, days)
	metrics, _ := args.Get(0).(*entity.QualityMetrics)
	return metrics, args.Error(1)
}

func (m *mockAdmissionRepository) HighRisk(ctx context.Context, minScore float64) ([]entity.Admission, error) {
	args := m.Called(ctx, minScore)
	rows, _ := args.Get(0).([]entity.Admission)
	return rows, args.Error(1)
}

type recordingJournal struct {
	mutations []resource.Mutation
}

func (j *recordingJournal) Record(ctx context.Context, m resource.Mutation) {
	j.mutations = append(j.mutations, m)
}
