package entity

import (
	"encoding/json"
	"testing"

	"go-clinic-dashboard/pkg/display"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID_DecodesNumbersAndStrings(t *testing.T) {
	var row struct {
		A ID `json:"a"`
		B ID `json:"b"`
		C ID `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": 42, "b": "ADM-7", "c": null}`), &row))
	assert.Equal(t, ID("42"), row.A)
	assert.Equal(t, ID("ADM-7"), row.B)
	assert.True(t, row.C.IsZero())

	out, err := json.Marshal(row)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a": 42, "b": "ADM-7", "c": null}`, string(out))
}

func TestID_LeadingZeroStaysString(t *testing.T) {
	out, err := json.Marshal(ID("007"))
	require.NoError(t, err)
	assert.Equal(t, `"007"`, string(out))
}

func TestStatusBadges_CoverEveryStatus(t *testing.T) {
	tables := map[string]struct {
		statuses []string
		badges   map[string]display.Variant
	}{
		"appointments":    {AppointmentStatuses, AppointmentBadges},
		"consultations":   {ConsultationStatuses, ConsultationBadges},
		"treatment_plans": {TreatmentPlanStatuses, TreatmentPlanBadges},
		"admissions":      {AdmissionStatuses, AdmissionBadges},
		"products":        {ProductStatuses, CatalogBadges},
		"services":        {ServiceStatuses, CatalogBadges},
	}

	for name, tc := range tables {
		t.Run(name, func(t *testing.T) {
			for _, s := range tc.statuses {
				v, ok := tc.badges[s]
				assert.True(t, ok, "status %q has no badge", s)
				assert.NotEmpty(t, v)
			}
		})
	}
}

func TestStatus_IsValid(t *testing.T) {
	assert.True(t, AppointmentStatusConfirmed.IsValid())
	assert.False(t, AppointmentStatus("pending").IsValid())
	assert.True(t, ConsultationStatusFollowUpRequired.IsValid())
	assert.True(t, TreatmentPlanStatusOnHold.IsValid())
	assert.False(t, AdmissionStatus("").IsValid())
	assert.True(t, AdmissionStatusReadyForDischarge.IsActive())
	assert.False(t, AdmissionStatusTransferred.IsActive())
}

func TestProduct_DerivedStatus(t *testing.T) {
	assert.Equal(t, CatalogStatusInactive, Product{IsActive: false, StockQuantity: 5}.Status())
	assert.Equal(t, CatalogStatusOutOfStock, Product{IsActive: true}.Status())
	assert.Equal(t, CatalogStatusActive, Product{IsActive: true, StockQuantity: 1}.Status())
	assert.Equal(t, CatalogStatusInactive, Service{}.Status())
}

func TestModal_Variants(t *testing.T) {
	var zero Modal
	assert.Equal(t, ModalClosed, zero.Mode())
	assert.False(t, zero.IsOpen())

	_, err := EditModal("")
	assert.ErrorIs(t, err, ErrModalTargetRequired)
	_, err = ViewModal("")
	assert.ErrorIs(t, err, ErrModalTargetRequired)

	m, err := EditModal("12")
	require.NoError(t, err)
	target, ok := m.Target()
	assert.True(t, ok)
	assert.Equal(t, ID("12"), target)
	assert.True(t, m.Editable())

	out, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"mode":"edit","target":12}`, string(out))

	out, err = json.Marshal(CreateModal())
	require.NoError(t, err)
	assert.JSONEq(t, `{"mode":"create"}`, string(out))
}

func TestSession_Can(t *testing.T) {
	s := &Session{Permissions: PermissionMap([]string{PermissionProductsView, ""})}
	assert.True(t, s.Can(PermissionProductsView))
	assert.False(t, s.Can(PermissionProductsManage))
	assert.False(t, s.Can(""))

	var nilSession *Session
	assert.False(t, nilSession.Can(PermissionProductsView))
}
