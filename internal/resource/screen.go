package resource

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"go-clinic-dashboard/internal/domain/entity"
	"go-clinic-dashboard/internal/domain/repository"
	"go-clinic-dashboard/pkg/apiclient"
	"go-clinic-dashboard/pkg/validator"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

var (
	ErrNoDraft            = errors.New("no create or edit form is open")
	ErrSubmitInFlight     = errors.New("a submission is already in progress")
	ErrRecordNotFound     = errors.New("record is not in the loaded collection")
	ErrInvalidStatus      = errors.New("status is not valid for this resource")
	ErrStatusNotSupported = errors.New("this resource has no editable status")
	ErrNotDeactivatable   = errors.New("this resource cannot be deactivated")
	ErrInvalidModalMode   = errors.New("unknown modal mode")
)

// Mutation describes a successful write for the activity journal.
type Mutation struct {
	Kind     string
	Action   string
	RecordID entity.ID
	Payload  map[string]interface{}
}

// Journal records mutations. Implementations must not fail the caller.
type Journal interface {
	Record(ctx context.Context, m Mutation)
}

// Deps are the collaborators shared by every screen.
type Deps struct {
	Validator  *validator.CustomValidator
	Catalogs   repository.CatalogRepository
	Journal    Journal
	Location   *time.Location
	ToastDelay time.Duration
	// CurrencySymbol prefixes amount columns; empty keeps the display default.
	CurrencySymbol string
	Log            *logrus.Logger
}

// Screen is one mounted resource screen: its collection, filter, modal,
// draft and toast.
type Screen[T any] struct {
	kind     *Kind[T]
	gateway  repository.ResourceGateway[T]
	deps     Deps
	notifier *Notifier
	list     *ListController[T]

	mu         sync.Mutex
	form       *Form[T]
	filter     entity.FilterState
	modal      entity.Modal
	modalGen   uint64
	viewing    *T
	refs       Catalogs
	lastQuery  url.Values
	submitting bool
	lastUsed   time.Time
}

func NewScreen[T any](kind *Kind[T], gateway repository.ResourceGateway[T], deps Deps) (*Screen[T], error) {
	if err := kind.check(); err != nil {
		return nil, err
	}
	if deps.Log == nil {
		deps.Log = logrus.StandardLogger()
	}
	if deps.Location == nil {
		deps.Location = time.UTC
	}
	if deps.Validator == nil {
		deps.Validator = validator.NewValidator()
	}
	notifier := NewNotifier(deps.ToastDelay)
	return &Screen[T]{
		kind:     kind,
		gateway:  gateway,
		deps:     deps,
		notifier: notifier,
		list:     NewListController(kind.Name, gateway, notifier, deps.Log),
		form:     NewForm(kind, deps.Validator, deps.Location),
		filter:   entity.DefaultFilterState(),
		modal:    entity.ClosedModal(),
		refs:     Catalogs{},
		lastUsed: time.Now(),
	}, nil
}

func (s *Screen[T]) Name() string {
	return s.kind.Name
}

// Mount loads the collection and the reference collections concurrently.
// Only a collection failure is returned; catalog failures raise a toast.
func (s *Screen[T]) Mount(ctx context.Context) error {
	s.touch()
	var g errgroup.Group
	g.Go(func() error {
		return s.list.FetchAll(ctx, s.query(nil))
	})
	if len(s.kind.Collections) > 0 {
		g.Go(func() error {
			if err := s.LoadCatalogs(ctx); err != nil {
				s.deps.Log.WithField("resource", s.kind.Name).Warnf("Failed to load reference data: %+v", err)
			}
			return nil
		})
	}
	err := g.Wait()
	if errors.Is(err, ErrStaleResponse) {
		return nil
	}
	return err
}

// Refresh refetches the collection. A result superseded by a newer fetch is
// not an error for the caller.
func (s *Screen[T]) Refresh(ctx context.Context, query url.Values) error {
	s.touch()
	s.mu.Lock()
	s.lastQuery = query
	s.mu.Unlock()
	err := s.list.FetchAll(ctx, s.query(query))
	if errors.Is(err, ErrStaleResponse) {
		return nil
	}
	return err
}

func (s *Screen[T]) query(extra url.Values) url.Values {
	if len(s.kind.Query) == 0 && len(extra) == 0 {
		return nil
	}
	q := url.Values{}
	for k, v := range s.kind.Query {
		q[k] = append([]string(nil), v...)
	}
	for k, v := range extra {
		q[k] = append([]string(nil), v...)
	}
	return q
}

// LoadCatalogs fetches every reference collection. Collections that fail
// keep their previous contents.
func (s *Screen[T]) LoadCatalogs(ctx context.Context) error {
	if s.deps.Catalogs == nil || len(s.kind.Collections) == 0 {
		return nil
	}

	var mu sync.Mutex
	loaded := Catalogs{}
	g, gctx := errgroup.WithContext(ctx)
	for name, path := range s.kind.Collections {
		name, path := name, path
		g.Go(func() error {
			entries, err := s.deps.Catalogs.List(gctx, path, nil)
			if err != nil {
				return fmt.Errorf("load %s: %w", name, err)
			}
			mu.Lock()
			loaded[name] = entries
			mu.Unlock()
			return nil
		})
	}
	err := g.Wait()

	s.mu.Lock()
	refs := s.refs.clone()
	for name, entries := range loaded {
		refs[name] = entries
	}
	s.refs = refs
	s.mu.Unlock()

	if err != nil {
		s.notifier.Show(apiclient.UserMessage(err), entity.AlertWarning)
	}
	return err
}

// View stores filter and returns the resulting projection.
func (s *Screen[T]) View(filter entity.FilterState) View[T] {
	s.touch()
	if filter.Category == "" {
		filter.Category = entity.FilterAll
	}
	s.mu.Lock()
	s.filter = filter
	s.mu.Unlock()
	return Reduce(s.list.Records(), s.kind, filter, s.deps.Location)
}

// CurrentView projects with the stored filter.
func (s *Screen[T]) CurrentView() View[T] {
	s.mu.Lock()
	filter := s.filter
	s.mu.Unlock()
	return Reduce(s.list.Records(), s.kind, filter, s.deps.Location)
}

func (s *Screen[T]) Records() []T {
	return s.list.Records()
}

func (s *Screen[T]) Find(id entity.ID) (T, bool) {
	for _, r := range s.list.Records() {
		if s.kind.ID(r) == id {
			return r, true
		}
	}
	var zero T
	return zero, false
}

// Open switches the modal from any state. Edit and view need a record from
// the loaded collection.
func (s *Screen[T]) Open(mode entity.ModalMode, target entity.ID) error {
	s.touch()
	switch mode {
	case entity.ModalClosed:
		s.CloseModal()
		return nil
	case entity.ModalCreate:
		s.mu.Lock()
		s.modal = entity.CreateModal()
		s.modalGen++
		s.viewing = nil
		s.form.Reset()
		s.mu.Unlock()
		return nil
	case entity.ModalEdit, entity.ModalView:
	default:
		return ErrInvalidModalMode
	}

	var (
		modal entity.Modal
		err   error
	)
	if mode == entity.ModalEdit {
		modal, err = entity.EditModal(target)
	} else {
		modal, err = entity.ViewModal(target)
	}
	if err != nil {
		return err
	}
	record, ok := s.Find(target)
	if !ok {
		return ErrRecordNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if mode == entity.ModalEdit {
		if err := s.form.Load(record); err != nil {
			return err
		}
		s.viewing = nil
	} else {
		s.form.Reset()
		r := record
		s.viewing = &r
	}
	s.modal = modal
	s.modalGen++
	return nil
}

// CloseModal returns to closed and discards the draft.
func (s *Screen[T]) CloseModal() {
	s.touch()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeLocked()
}

func (s *Screen[T]) closeLocked() {
	s.modal = entity.ClosedModal()
	s.modalGen++
	s.viewing = nil
	s.form.Reset()
}

func (s *Screen[T]) Modal() entity.Modal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.modal
}

// SetFields assigns draft values and runs derived-field recomputes.
func (s *Screen[T]) SetFields(values map[string]interface{}) (Draft, error) {
	s.touch()
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.modal.Editable() {
		return nil, ErrNoDraft
	}
	s.form.SetFields(values, s.refs)
	return s.form.Draft(), nil
}

// Submit validates the draft, then creates or updates the record and
// refetches the collection. A second submit while one is in flight is
// rejected.
func (s *Screen[T]) Submit(ctx context.Context) error {
	s.touch()
	s.mu.Lock()
	if !s.modal.Editable() {
		s.mu.Unlock()
		return ErrNoDraft
	}
	if s.submitting {
		s.mu.Unlock()
		return ErrSubmitInFlight
	}
	if err := s.form.Validate(s.refs); err != nil {
		s.mu.Unlock()
		s.notifier.Show(err.Error(), entity.AlertDanger)
		return err
	}
	payload, err := s.form.ToPayload()
	if err != nil {
		s.mu.Unlock()
		s.notifier.Show(err.Error(), entity.AlertDanger)
		return err
	}
	mode := s.modal.Mode()
	target, _ := s.modal.Target()
	gen := s.modalGen
	s.submitting = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.submitting = false
		s.mu.Unlock()
	}()

	var (
		saved  *T
		action string
	)
	if mode == entity.ModalCreate {
		action = entity.ActivityActionCreate
		saved, err = s.gateway.Create(ctx, payload)
	} else {
		action = entity.ActivityActionUpdate
		saved, err = s.gateway.Update(ctx, target, payload)
	}
	if err != nil {
		s.deps.Log.WithFields(logrus.Fields{"resource": s.kind.Name, "action": action}).Warnf("Failed to save record: %+v", err)
		s.notifier.Show(apiclient.UserMessage(err), entity.AlertDanger)
		return err
	}

	recordID := target
	if saved != nil && !s.kind.ID(*saved).IsZero() {
		recordID = s.kind.ID(*saved)
	}
	s.journal(ctx, action, recordID, payload)

	verb := "created"
	if action == entity.ActivityActionUpdate {
		verb = "updated"
	}
	s.notifier.Show(fmt.Sprintf("%s %s successfully", s.kind.label(), verb), entity.AlertSuccess)

	s.mu.Lock()
	if s.modalGen == gen {
		s.closeLocked()
	}
	s.mu.Unlock()

	s.refetch(ctx)
	return nil
}

// SetStatus changes a record's status. Any member of the enumeration may be
// set from any other; no transition order is enforced.
func (s *Screen[T]) SetStatus(ctx context.Context, id entity.ID, status string) error {
	s.touch()
	if s.kind.StatusField == "" {
		return ErrStatusNotSupported
	}
	if !s.kind.validStatus(status) {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	payload := map[string]interface{}{s.kind.StatusField: status}
	var err error
	if s.kind.StatusAction != "" {
		err = s.gateway.Action(ctx, id, s.kind.StatusAction, payload)
	} else {
		_, err = s.gateway.Patch(ctx, id, payload)
	}
	if err != nil {
		s.deps.Log.WithFields(logrus.Fields{"resource": s.kind.Name, "id": id}).Warnf("Failed to update status: %+v", err)
		s.notifier.Show(apiclient.UserMessage(err), entity.AlertDanger)
		return err
	}

	s.journal(ctx, entity.ActivityActionStatus, id, payload)
	s.notifier.Show(fmt.Sprintf("%s status updated to %s", s.kind.label(), status), entity.AlertSuccess)
	s.refetch(ctx)
	return nil
}

// Deactivate flips is_active off. Records are never deleted.
func (s *Screen[T]) Deactivate(ctx context.Context, id entity.ID) error {
	s.touch()
	if !s.kind.Deactivatable {
		return ErrNotDeactivatable
	}
	payload := map[string]interface{}{"is_active": false}
	if _, err := s.gateway.Patch(ctx, id, payload); err != nil {
		s.deps.Log.WithFields(logrus.Fields{"resource": s.kind.Name, "id": id}).Warnf("Failed to deactivate record: %+v", err)
		s.notifier.Show(apiclient.UserMessage(err), entity.AlertDanger)
		return err
	}

	s.journal(ctx, entity.ActivityActionDeactivate, id, payload)
	s.notifier.Show(fmt.Sprintf("%s deactivated", s.kind.label()), entity.AlertSuccess)
	s.refetch(ctx)
	return nil
}

// Notify shows a toast on this screen.
func (s *Screen[T]) Notify(message string, kind entity.AlertKind) entity.Alert {
	return s.notifier.Show(message, kind)
}

func (s *Screen[T]) Alert() entity.Alert {
	return s.notifier.Current()
}

func (s *Screen[T]) DismissAlert(id uuid.UUID) bool {
	return s.notifier.Dismiss(id)
}

func (s *Screen[T]) Loading() bool {
	return s.list.Loading()
}

func (s *Screen[T]) Dispose() {
	s.notifier.Close()
}

func (s *Screen[T]) LastUsed() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUsed
}

func (s *Screen[T]) touch() {
	s.mu.Lock()
	s.lastUsed = time.Now()
	s.mu.Unlock()
}

// refetch repeats the last Refresh query so a mutation keeps the list the
// caller asked for.
func (s *Screen[T]) refetch(ctx context.Context) {
	s.mu.Lock()
	query := s.lastQuery
	s.mu.Unlock()
	if err := s.list.FetchAll(ctx, s.query(query)); err != nil && !errors.Is(err, ErrStaleResponse) {
		s.deps.Log.WithField("resource", s.kind.Name).Warnf("Failed to refetch after mutation: %+v", err)
	}
}

func (s *Screen[T]) journal(ctx context.Context, action string, id entity.ID, payload map[string]interface{}) {
	if s.deps.Journal == nil {
		return
	}
	s.deps.Journal.Record(ctx, Mutation{
		Kind:     s.kind.Name,
		Action:   action,
		RecordID: id,
		Payload:  payload,
	})
}
