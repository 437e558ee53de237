package resource

import (
	"encoding/json"
	"testing"
	"time"

	"go-clinic-dashboard/internal/domain/entity"
	"go-clinic-dashboard/pkg/timezone"
	"go-clinic-dashboard/pkg/validator"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitAndCombineDateTime(t *testing.T) {
	date, clock := SplitDateTime("2025-01-05T14:30:00")
	assert.Equal(t, "2025-01-05", date)
	assert.Equal(t, "14:30", clock)
	assert.Equal(t, "2025-01-05T14:30:00", CombineDateTime(date, clock))

	date, clock = SplitDateTime("2025-01-05")
	assert.Equal(t, "2025-01-05", date)
	assert.Equal(t, "", clock)

	assert.Equal(t, "2025-01-05T14:30:15", CombineDateTime("2025-01-05", "14:30:15"))
	assert.Equal(t, "", CombineDateTime("", "09:00"))
}

func TestForm_RecordRoundTrip(t *testing.T) {
	kind := appointmentKind()
	record := entity.Appointment{
		ID:              "5",
		Client:          "1",
		ClientName:      "Ada",
		Service:         "2",
		Cosmetologist:   "3",
		AppointmentDate: "2025-01-05T14:30:00",
		Duration:        60,
		Price:           decimal.RequireFromString("150"),
		Status:          entity.AppointmentStatusConfirmed,
		Notes:           "Bring forms",
	}

	form := NewForm(kind, validator.NewValidator(), time.UTC)
	require.NoError(t, form.Load(record))

	draft := form.Draft()
	assert.Equal(t, "2025-01-05", draft.String("appointment_date"))
	assert.Equal(t, "14:30", draft.String("appointment_time"))

	payload, err := form.ToPayload()
	require.NoError(t, err)
	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"client": 1,
		"service": 2,
		"cosmetologist": 3,
		"appointment_date": "2025-01-05T14:30:00",
		"duration": 60,
		"price": 150,
		"status": "confirmed",
		"notes": "Bring forms"
	}`, string(out))
}

func TestForm_OffsetTimestampUsesLocationWallClock(t *testing.T) {
	ny := timezone.Location("America/New_York")
	record := entity.Appointment{
		ID:              "5",
		Client:          "1",
		Service:         "2",
		Cosmetologist:   "3",
		AppointmentDate: "2025-01-06T02:00:00Z",
		Duration:        60,
		Status:          entity.AppointmentStatusScheduled,
	}

	form := NewForm(appointmentKind(), validator.NewValidator(), ny)
	require.NoError(t, form.Load(record))

	draft := form.Draft()
	assert.Equal(t, timezone.CalendarDay(record.AppointmentDate, ny), draft.String("appointment_date"))
	assert.Equal(t, "2025-01-05", draft.String("appointment_date"))
	assert.Equal(t, "21:00", draft.String("appointment_time"))

	payload, err := form.ToPayload()
	require.NoError(t, err)
	sent, ok := payload["appointment_date"].(string)
	require.True(t, ok)
	assert.Equal(t, "2025-01-05T21:00:00-05:00", sent)
	at, err := time.Parse(time.RFC3339, sent)
	require.NoError(t, err)
	assert.True(t, at.Equal(time.Date(2025, 1, 6, 2, 0, 0, 0, time.UTC)))

	d, err := FromRecord(appointmentKind(), record, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-06", d.String("appointment_date"))
	assert.Equal(t, "02:00", d.String("appointment_time"))

	form.SetField("appointment_time", "22:30", nil)
	payload, err = form.ToPayload()
	require.NoError(t, err)
	assert.Equal(t, "2025-01-05T22:30:00-05:00", payload["appointment_date"])
}

func TestForm_NaiveTimestampStaysNaive(t *testing.T) {
	ny := timezone.Location("America/New_York")
	form := NewForm(appointmentKind(), validator.NewValidator(), ny)
	require.NoError(t, form.Load(entity.Appointment{ID: "5", AppointmentDate: "2025-01-06T02:00:00"}))

	draft := form.Draft()
	assert.Equal(t, "2025-01-06", draft.String("appointment_date"))
	assert.Equal(t, "02:00", draft.String("appointment_time"))

	payload, err := form.ToPayload()
	require.NoError(t, err)
	assert.Equal(t, "2025-01-06T02:00:00", payload["appointment_date"])

	form.Reset()
	form.SetFields(map[string]interface{}{"appointment_date": "2025-02-01", "appointment_time": "09:00"}, nil)
	payload, err = form.ToPayload()
	require.NoError(t, err)
	assert.Equal(t, "2025-02-01T09:00:00", payload["appointment_date"])
}

func TestForm_SetFieldCopiesCatalogValues(t *testing.T) {
	form := NewForm(appointmentKind(), validator.NewValidator(), time.UTC)
	form.SetField("service", 2, testCatalogs())

	d := form.Draft()
	assert.Equal(t, "80.5", d.String("price"))
	assert.Equal(t, "45", d.String("duration"))
	assert.Equal(t, "scheduled", d.String("status"), "defaults survive")

	form.SetField("service", "99", testCatalogs())
	assert.Equal(t, "80.5", form.Draft().String("price"), "unknown selection leaves values")
}

func TestForm_ValidateStopsAtFirstFailure(t *testing.T) {
	form := NewForm(appointmentKind(), validator.NewValidator(), time.UTC)
	refs := testCatalogs()

	err := form.Validate(refs)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "client", verr.Field)
	assert.Equal(t, "client is required", verr.Message)

	form.SetFields(map[string]interface{}{
		"client":           "1",
		"service":          "2",
		"cosmetologist":    "3",
		"appointment_date": "2025-02-01",
	}, refs)
	err = form.Validate(refs)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "appointment_time is required", verr.Message)

	form.SetField("appointment_time", "09:00", refs)
	assert.NoError(t, form.Validate(refs))
}

func TestForm_ValidateRejectsUnknownReference(t *testing.T) {
	form := NewForm(appointmentKind(), validator.NewValidator(), time.UTC)
	refs := testCatalogs()
	form.SetFields(map[string]interface{}{
		"client":           "1",
		"service":          "2",
		"cosmetologist":    "42",
		"appointment_date": "2025-02-01",
		"appointment_time": "09:00",
	}, refs)

	err := form.Validate(refs)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "cosmetologist does not match any known cosmetologists", verr.Message)

	err = form.Validate(Catalogs{})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "client", verr.Field, "references are rejected when catalogs are not loaded")
}

func TestForm_NumericCoercion(t *testing.T) {
	form := NewForm(appointmentKind(), validator.NewValidator(), time.UTC)
	form.SetFields(map[string]interface{}{"price": "12.5x"}, nil)

	err := form.Validate(testCatalogs())
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "price must be a number", verr.Message)

	form.SetFields(map[string]interface{}{"price": " 12.50 ", "duration": ""}, nil)
	payload, err := form.ToPayload()
	require.NoError(t, err)
	assert.Equal(t, json.Number("12.50"), payload["price"])
	_, hasDuration := payload["duration"]
	assert.False(t, hasDuration)
}

func TestForm_ToPayloadDropsClientOnlyFields(t *testing.T) {
	kind := appointmentKind()
	kind.ClientOnly = []string{"notes"}
	form := NewForm(kind, validator.NewValidator(), time.UTC)
	form.SetFields(map[string]interface{}{
		"notes":            "internal",
		"client_name":      "Ada",
		"appointment_date": "2025-02-01",
		"appointment_time": "09:00",
	}, nil)

	payload, err := form.ToPayload()
	require.NoError(t, err)
	assert.NotContains(t, payload, "notes")
	assert.NotContains(t, payload, "client_name")
	assert.NotContains(t, payload, "appointment_time")
	assert.Equal(t, "2025-02-01T09:00:00", payload["appointment_date"])
}

func TestForm_ValidationBoundary(t *testing.T) {
	type concernForm struct {
		PrimaryConcern string `json:"primary_concern" validate:"required,min=10"`
	}
	kind := &Kind[entity.Consultation]{
		Name:       "consultations",
		Path:       "/cosmetology/consultations/",
		PageSize:   8,
		ID:         func(c entity.Consultation) entity.ID { return c.ID },
		Searchable: func(c entity.Consultation) []string { return []string{c.PrimaryConcern} },
		Less:       func(a, b entity.Consultation, _ *time.Location) bool { return a.ConsultationDate > b.ConsultationDate },
		NewForm:    func() interface{} { return &concernForm{} },
	}
	form := NewForm(kind, validator.NewValidator(), time.UTC)

	form.SetField("primary_concern", "dry skin!", nil)
	err := form.Validate(nil)
	require.Error(t, err)
	assert.Equal(t, "primary_concern must be at least 10 characters", err.Error())

	form.SetField("primary_concern", "dry skin!!", nil)
	assert.NoError(t, form.Validate(nil))
}

func TestDraft_IDs(t *testing.T) {
	d := Draft{
		"a": []interface{}{json.Number("1"), "2", float64(3), ""},
		"b": []string{"x"},
		"c": "7",
	}
	assert.Equal(t, []entity.ID{"1", "2", "3"}, d.IDs("a"))
	assert.Equal(t, []entity.ID{"x"}, d.IDs("b"))
	assert.Equal(t, []entity.ID{"7"}, d.IDs("c"))
	assert.Nil(t, d.IDs("missing"))
}
