package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-clinic-dashboard/internal/delivery/dto"
	"go-clinic-dashboard/internal/domain/entity"
	"go-clinic-dashboard/internal/resource"
	"go-clinic-dashboard/internal/usecase"
	"go-clinic-dashboard/pkg/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newScreenHandler(uc *mockScreenUsecase) *ScreenHandler {
	responder, _, _ := newTestResponder()
	return NewScreenHandler(uc, validator.NewValidator(), responder)
}

func TestScreenHandler_ViewWithoutFilterKeepsCurrentState(t *testing.T) {
	uc := &mockScreenUsecase{}
	state := &resource.State{Kind: "appointments", Page: 2, PageSize: 10, TotalPages: 3, Total: 25}
	uc.On("View", "s1", "appointments", (*entity.FilterState)(nil)).Return(state, nil).Once()

	rec := httptest.NewRecorder()
	newScreenHandler(uc).View(rec, authedRequest(http.MethodGet, "/screens/appointments", "", map[string]string{"kind": "appointments"}))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	require.NotNil(t, body.Meta)
	assert.Equal(t, 2, body.Meta.Page)
	assert.Equal(t, 10, body.Meta.Limit)
	assert.Equal(t, 3, body.Meta.TotalPages)
	assert.Equal(t, 25, body.Meta.Total)
	uc.AssertExpectations(t)
}

func TestScreenHandler_ViewFilterChangeResetsPage(t *testing.T) {
	uc := &mockScreenUsecase{}
	current := &resource.State{Filter: entity.FilterState{Search: "ana", Category: "scheduled", Page: 3}}
	uc.On("View", "s1", "appointments", (*entity.FilterState)(nil)).Return(current, nil).Once()
	uc.On("View", "s1", "appointments", mock.MatchedBy(func(f *entity.FilterState) bool {
		return f != nil && f.Search == "maria" && f.Category == "scheduled" && f.Page == 1
	})).Return(&resource.State{Page: 1}, nil).Once()

	rec := httptest.NewRecorder()
	newScreenHandler(uc).View(rec, authedRequest(http.MethodGet, "/screens/appointments?search=maria", "", map[string]string{"kind": "appointments"}))

	assert.Equal(t, http.StatusOK, rec.Code)
	uc.AssertExpectations(t)
}

func TestScreenHandler_ViewExplicitPageWins(t *testing.T) {
	uc := &mockScreenUsecase{}
	current := &resource.State{Filter: entity.FilterState{Category: entity.FilterAll, Page: 1}}
	uc.On("View", "s1", "products", (*entity.FilterState)(nil)).Return(current, nil).Once()
	uc.On("View", "s1", "products", mock.MatchedBy(func(f *entity.FilterState) bool {
		return f != nil && f.Category == "skincare" && f.Page == 4
	})).Return(&resource.State{Page: 4}, nil).Once()

	rec := httptest.NewRecorder()
	newScreenHandler(uc).View(rec, authedRequest(http.MethodGet, "/screens/products?category=skincare&page=4", "", map[string]string{"kind": "products"}))

	assert.Equal(t, http.StatusOK, rec.Code)
	uc.AssertExpectations(t)
}

func TestScreenHandler_ViewRejectsBadPage(t *testing.T) {
	uc := &mockScreenUsecase{}
	uc.On("View", "s1", "products", (*entity.FilterState)(nil)).Return(&resource.State{}, nil).Once()

	rec := httptest.NewRecorder()
	newScreenHandler(uc).View(rec, authedRequest(http.MethodGet, "/screens/products?page=two", "", map[string]string{"kind": "products"}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "page must be a number", decode(t, rec).Message)
}

func TestScreenHandler_ViewNotMounted(t *testing.T) {
	uc := &mockScreenUsecase{}
	uc.On("View", "s1", "services", (*entity.FilterState)(nil)).Return(nil, resource.ErrScreenNotMounted).Once()

	rec := httptest.NewRecorder()
	newScreenHandler(uc).View(rec, authedRequest(http.MethodGet, "/screens/services", "", map[string]string{"kind": "services"}))

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestScreenHandler_RequiresSession(t *testing.T) {
	uc := &mockScreenUsecase{}
	rec := httptest.NewRecorder()
	newScreenHandler(uc).Mount(rec, httptest.NewRequest(http.MethodPost, "/screens/appointments/mount", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	uc.AssertNotCalled(t, "Mount", mock.Anything, mock.Anything, mock.Anything)
}

func TestScreenHandler_MountFailureCarriesState(t *testing.T) {
	uc := &mockScreenUsecase{}
	alert := &entity.Alert{Show: true, Message: "Failed to load appointments", Kind: entity.AlertDanger}
	uc.On("Mount", mock.Anything, "s1", "appointments").
		Return(&resource.State{Kind: "appointments", Alert: alert}, errors.New("boom")).Once()

	rec := httptest.NewRecorder()
	newScreenHandler(uc).Mount(rec, authedRequest(http.MethodPost, "/screens/appointments/mount", "", map[string]string{"kind": "appointments"}))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decode(t, rec)
	assert.False(t, body.Success)
	data, ok := body.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "appointments", data["kind"])
}

func TestScreenHandler_OpenModalValidatesMode(t *testing.T) {
	uc := &mockScreenUsecase{}
	rec := httptest.NewRecorder()
	newScreenHandler(uc).OpenModal(rec, authedRequest(http.MethodPost, "/screens/appointments/modal", `{"mode":"delete"}`, map[string]string{"kind": "appointments"}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	fields, ok := body.Error.(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, fields, "mode")
}

func TestScreenHandler_OpenModal(t *testing.T) {
	uc := &mockScreenUsecase{}
	modal, err := entity.EditModal("7")
	require.NoError(t, err)
	uc.On("OpenModal", "s1", "appointments", &dto.OpenModalRequest{Mode: entity.ModalEdit, Target: "7"}).
		Return(&resource.State{Modal: modal}, nil).Once()

	rec := httptest.NewRecorder()
	newScreenHandler(uc).OpenModal(rec, authedRequest(http.MethodPost, "/screens/appointments/modal", `{"mode":"edit","target":"7"}`, map[string]string{"kind": "appointments"}))

	assert.Equal(t, http.StatusOK, rec.Code)
	data, ok := decode(t, rec).Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, map[string]interface{}{"mode": "edit", "target": float64(7)}, data["modal"])
	uc.AssertExpectations(t)
}

func TestScreenHandler_UpdateDraftKeepsNumbers(t *testing.T) {
	uc := &mockScreenUsecase{}
	uc.On("UpdateDraft", "s1", "treatment-plans", mock.MatchedBy(func(values map[string]interface{}) bool {
		n, ok := values["sessions_count"].(json.Number)
		return ok && n.String() == "6"
	})).Return(&resource.State{}, nil).Once()

	rec := httptest.NewRecorder()
	newScreenHandler(uc).UpdateDraft(rec, authedRequest(http.MethodPatch, "/screens/treatment-plans/draft", `{"sessions_count":6}`, map[string]string{"kind": "treatment-plans"}))

	assert.Equal(t, http.StatusOK, rec.Code)
	uc.AssertExpectations(t)
}

func TestScreenHandler_SubmitDraftValidationError(t *testing.T) {
	uc := &mockScreenUsecase{}
	uc.On("SubmitDraft", mock.Anything, "s1", "products").
		Return(&resource.State{}, &resource.ValidationError{Field: "price", Message: "price must be a number"}).Once()

	rec := httptest.NewRecorder()
	newScreenHandler(uc).SubmitDraft(rec, authedRequest(http.MethodPost, "/screens/products/draft/submit", "", map[string]string{"kind": "products"}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "price must be a number", body.Message)
	assert.Equal(t, map[string]interface{}{"price": "price must be a number"}, body.Error)
}

func TestScreenHandler_SetStatus(t *testing.T) {
	uc := &mockScreenUsecase{}
	uc.On("SetStatus", mock.Anything, "s1", "consultations", entity.ID("12"), "completed").Return(&resource.State{}, nil).Once()

	rec := httptest.NewRecorder()
	req := authedRequest(http.MethodPost, "/screens/consultations/records/12/status", `{"status":"completed"}`,
		map[string]string{"kind": "consultations", "id": "12"})
	newScreenHandler(uc).SetStatus(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	uc.AssertExpectations(t)
}

func TestScreenHandler_SetStatusRequiresStatus(t *testing.T) {
	uc := &mockScreenUsecase{}
	rec := httptest.NewRecorder()
	req := authedRequest(http.MethodPost, "/screens/consultations/records/12/status", `{}`,
		map[string]string{"kind": "consultations", "id": "12"})
	newScreenHandler(uc).SetStatus(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScreenHandler_DismissAlert(t *testing.T) {
	uc := &mockScreenUsecase{}
	rec := httptest.NewRecorder()
	newScreenHandler(uc).DismissAlert(rec, authedRequest(http.MethodDelete, "/screens/products/alert/nope", "",
		map[string]string{"kind": "products", "id": "nope"}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	uc.On("DismissAlert", "s1", "products", mock.Anything).Return(usecase.ErrAlertNotFound).Once()
	rec = httptest.NewRecorder()
	newScreenHandler(uc).DismissAlert(rec, authedRequest(http.MethodDelete, "/screens/products/alert/x", "",
		map[string]string{"kind": "products", "id": "7f1c2e84-9a57-4c1e-9e0f-3b8f2a1d5c60"}))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestScreenHandler_Unmount(t *testing.T) {
	uc := &mockScreenUsecase{}
	uc.On("Unmount", "s1", "admissions").Return(true).Once()

	rec := httptest.NewRecorder()
	newScreenHandler(uc).Unmount(rec, authedRequest(http.MethodDelete, "/screens/admissions", "", map[string]string{"kind": "admissions"}))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]interface{}{"unmounted": true}, decode(t, rec).Data)
}
