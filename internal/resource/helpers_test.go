package resource

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"go-clinic-dashboard/internal/domain/entity"
	"go-clinic-dashboard/pkg/timezone"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

type appointmentForm struct {
	Client          entity.ID `json:"client" validate:"required"`
	Service         entity.ID `json:"service" validate:"required"`
	Cosmetologist   entity.ID `json:"cosmetologist" validate:"required"`
	AppointmentDate string    `json:"appointment_date" validate:"required"`
	AppointmentTime string    `json:"appointment_time" validate:"required"`
	Duration        int       `json:"duration"`
	Price           float64   `json:"price"`
	Status          string    `json:"status"`
	Notes           string    `json:"notes"`
}

func appointmentKind() *Kind[entity.Appointment] {
	return &Kind[entity.Appointment]{
		Name:     "appointments",
		Label:    "Appointment",
		Path:     "/cosmetology/appointments/",
		PageSize: 2,
		Collections: map[string]string{
			entity.CollectionClients:        "/cosmetology/clients/",
			entity.CollectionServices:       "/cosmetology/services/",
			entity.CollectionCosmetologists: "/cosmetology/cosmetologists/",
		},
		ID: func(a entity.Appointment) entity.ID { return a.ID },
		Searchable: func(a entity.Appointment) []string {
			return []string{a.ClientName, a.ServiceName, a.Notes}
		},
		Category: func(a entity.Appointment) string { return string(a.Status) },
		Date:     func(a entity.Appointment) string { return a.AppointmentDate },
		Less: func(a, b entity.Appointment, loc *time.Location) bool {
			return timezone.Before(a.AppointmentDate, b.AppointmentDate, loc)
		},
		Status:   func(a entity.Appointment) string { return string(a.Status) },
		Statuses: entity.AppointmentStatuses,
		Badges:   entity.AppointmentBadges,
		NewForm:  func() interface{} { return &appointmentForm{} },
		Defaults: map[string]interface{}{"status": "scheduled"},
		DateTimes: []DateTimeField{
			{Field: "appointment_date", DateField: "appointment_date", TimeField: "appointment_time"},
		},
		Numeric: []string{"price", "duration"},
		References: []Reference{
			{Field: "client", Collection: entity.CollectionClients},
			{Field: "service", Collection: entity.CollectionServices},
			{Field: "cosmetologist", Collection: entity.CollectionCosmetologists},
		},
		Derivations: []Derivation{
			CopyFromCatalog("service", entity.CollectionServices, map[string]string{
				"price":    "price",
				"duration": "duration",
			}),
		},
		StatusField: "status",
	}
}

func testCatalogs() Catalogs {
	return Catalogs{
		entity.CollectionClients:        {{ID: "1", Name: "Ada"}},
		entity.CollectionServices:       {{ID: "2", Name: "Hydra Facial", Price: decimal.RequireFromString("80.50"), Duration: 45}},
		entity.CollectionCosmetologists: {{ID: "3", Name: "Mia"}},
	}
}

type stubCatalogRepository struct {
	catalogs Catalogs
	paths    map[string]string
	err      error
}

func (r *stubCatalogRepository) List(ctx context.Context, path string, query url.Values) ([]entity.CatalogEntry, error) {
	if r.err != nil {
		return nil, r.err
	}
	for name, p := range r.paths {
		if p == path {
			return r.catalogs[name], nil
		}
	}
	return nil, nil
}

// memoryGateway is an in-memory upstream collection.
type memoryGateway struct {
	mu       sync.Mutex
	records  []entity.Appointment
	nextID   int
	listFn   func(ctx context.Context, q url.Values) ([]entity.Appointment, error)
	createFn func(ctx context.Context, payload map[string]interface{}) error
	patches  []map[string]interface{}
	actions  []string
	listErr  error
}

func (g *memoryGateway) List(ctx context.Context, q url.Values) ([]entity.Appointment, error) {
	if g.listFn != nil {
		return g.listFn(ctx, q)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.listErr != nil {
		return nil, g.listErr
	}
	return append([]entity.Appointment(nil), g.records...), nil
}

func (g *memoryGateway) Get(ctx context.Context, id entity.ID) (*entity.Appointment, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, r := range g.records {
		if r.ID == id {
			r := r
			return &r, nil
		}
	}
	return nil, nil
}

func (g *memoryGateway) Create(ctx context.Context, payload map[string]interface{}) (*entity.Appointment, error) {
	if g.createFn != nil {
		if err := g.createFn(ctx, payload); err != nil {
			return nil, err
		}
	}
	rec, err := decodeAppointment(payload)
	if err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.nextID++
	rec.ID = entity.ID(strconv.Itoa(g.nextID))
	g.records = append(g.records, rec)
	return &rec, nil
}

func (g *memoryGateway) Update(ctx context.Context, id entity.ID, payload map[string]interface{}) (*entity.Appointment, error) {
	rec, err := decodeAppointment(payload)
	if err != nil {
		return nil, err
	}
	rec.ID = id
	g.mu.Lock()
	defer g.mu.Unlock()
	for i := range g.records {
		if g.records[i].ID == id {
			g.records[i] = rec
		}
	}
	return &rec, nil
}

func (g *memoryGateway) Patch(ctx context.Context, id entity.ID, payload map[string]interface{}) (*entity.Appointment, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.patches = append(g.patches, payload)
	for i := range g.records {
		if g.records[i].ID == id {
			if s, ok := payload["status"].(string); ok {
				g.records[i].Status = entity.AppointmentStatus(s)
			}
			r := g.records[i]
			return &r, nil
		}
	}
	return nil, nil
}

func (g *memoryGateway) Action(ctx context.Context, id entity.ID, action string, payload map[string]interface{}) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.actions = append(g.actions, id.String()+"/"+action)
	return nil
}

func decodeAppointment(payload map[string]interface{}) (entity.Appointment, error) {
	var rec entity.Appointment
	raw, err := json.Marshal(payload)
	if err != nil {
		return rec, err
	}
	err = json.Unmarshal(raw, &rec)
	return rec, err
}

type recordingJournal struct {
	mu        sync.Mutex
	mutations []Mutation
}

func (j *recordingJournal) Record(ctx context.Context, m Mutation) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.mutations = append(j.mutations, m)
}

func (j *recordingJournal) actions() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	var out []string
	for _, m := range j.mutations {
		out = append(out, m.Kind+":"+m.Action+":"+m.RecordID.String())
	}
	return out
}

func quietLogger() *logrus.Logger {
	log, _ := test.NewNullLogger()
	return log
}

func appointment(id, date, client string, status entity.AppointmentStatus) entity.Appointment {
	return entity.Appointment{
		ID:              entity.ID(id),
		ClientName:      client,
		ServiceName:     strings.ToLower(client) + " facial",
		AppointmentDate: date,
		Status:          status,
	}
}
