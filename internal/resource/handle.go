package resource

import (
	"context"
	"net/url"
	"time"

	"go-clinic-dashboard/internal/domain/entity"

	"github.com/google/uuid"
)

// Handle is the type-erased face of a Screen used by the registry and the
// HTTP layer.
type Handle interface {
	Name() string
	Mount(ctx context.Context) error
	Refresh(ctx context.Context, query url.Values) error
	ApplyFilter(filter entity.FilterState) State
	State() State
	Open(mode entity.ModalMode, target entity.ID) error
	CloseModal()
	SetFields(values map[string]interface{}) (Draft, error)
	Submit(ctx context.Context) error
	SetStatus(ctx context.Context, id entity.ID, status string) error
	Deactivate(ctx context.Context, id entity.ID) error
	Notify(message string, kind entity.AlertKind) entity.Alert
	Alert() entity.Alert
	DismissAlert(id uuid.UUID) bool
	Dispose()
	LastUsed() time.Time
}

// State is the JSON document a screen renders from.
type State struct {
	Kind       string                           `json:"kind"`
	Label      string                           `json:"label"`
	Filter     entity.FilterState               `json:"filter"`
	Rows       interface{}                      `json:"rows"`
	Page       int                              `json:"page"`
	PageSize   int                              `json:"page_size"`
	TotalPages int                              `json:"total_pages"`
	Total      int                              `json:"total"`
	Empty      bool                             `json:"empty"`
	Loading    bool                             `json:"loading"`
	Submitting bool                             `json:"submitting"`
	FetchedAt  *time.Time                       `json:"fetched_at,omitempty"`
	Modal      entity.Modal                     `json:"modal"`
	Draft      Draft                            `json:"draft,omitempty"`
	Viewing    interface{}                      `json:"viewing,omitempty"`
	Alert      *entity.Alert                    `json:"alert,omitempty"`
	Statuses   []string                         `json:"statuses,omitempty"`
	References map[string][]entity.CatalogEntry `json:"references,omitempty"`
}

func (s *Screen[T]) ApplyFilter(filter entity.FilterState) State {
	return s.state(s.View(filter))
}

func (s *Screen[T]) State() State {
	return s.state(s.CurrentView())
}

func (s *Screen[T]) state(view View[T]) State {
	st := State{
		Kind:       s.kind.Name,
		Label:      s.kind.label(),
		Rows:       view.Rows,
		Page:       view.Page,
		PageSize:   view.PageSize,
		TotalPages: view.TotalPages,
		Total:      view.Total,
		Empty:      view.Empty,
		Loading:    s.list.Loading(),
		Statuses:   s.kind.Statuses,
	}
	if at := s.list.FetchedAt(); !at.IsZero() {
		st.FetchedAt = &at
	}
	if alert := s.notifier.Current(); alert.Show {
		st.Alert = &alert
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	st.Filter = s.filter
	st.Filter.Page = view.Page
	st.Submitting = s.submitting
	st.Modal = s.modal
	if s.modal.Editable() {
		st.Draft = s.form.Draft()
		st.References = s.refs.clone()
	}
	if s.viewing != nil {
		st.Viewing = *s.viewing
	}
	return st
}
