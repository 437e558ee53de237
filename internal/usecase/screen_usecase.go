package usecase

import (
	"context"
	"errors"
	"net/url"

	"go-clinic-dashboard/internal/delivery/dto"
	"go-clinic-dashboard/internal/domain/entity"
	"go-clinic-dashboard/internal/repository"
	"go-clinic-dashboard/internal/resource"
	"go-clinic-dashboard/pkg/apiclient"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var ErrAlertNotFound = errors.New("alert is no longer shown")

type ScreenUsecase interface {
	Kinds(session *entity.Session) []dto.KindResponse
	Mount(ctx context.Context, sessionID, kind string) (*resource.State, error)
	Unmount(sessionID, kind string) bool
	View(sessionID, kind string, filter *entity.FilterState) (*resource.State, error)
	Refresh(ctx context.Context, sessionID, kind string, query url.Values) (*resource.State, error)
	OpenModal(sessionID, kind string, req *dto.OpenModalRequest) (*resource.State, error)
	CloseModal(sessionID, kind string) (*resource.State, error)
	UpdateDraft(sessionID, kind string, values map[string]interface{}) (*resource.State, error)
	SubmitDraft(ctx context.Context, sessionID, kind string) (*resource.State, error)
	SetStatus(ctx context.Context, sessionID, kind string, id entity.ID, status string) (*resource.State, error)
	Deactivate(ctx context.Context, sessionID, kind string, id entity.ID) (*resource.State, error)
	Alert(sessionID, kind string) (*entity.Alert, error)
	DismissAlert(sessionID, kind string, id uuid.UUID) error
}

type screenUsecase struct {
	registry *resource.Registry
	log      *logrus.Logger
}

func NewScreenUsecase(registry *resource.Registry, log *logrus.Logger) ScreenUsecase {
	return &screenUsecase{registry: registry, log: log}
}

// RegisterScreens registers the six resource screens. Each mount builds a
// fresh screen on top of the shared upstream client.
func RegisterScreens(registry *resource.Registry, client *apiclient.Client, deps resource.Deps) {
	register(registry, NewAppointmentKind(), client, deps)
	register(registry, NewConsultationKind(), client, deps)
	register(registry, NewProductKind(), client, deps)
	register(registry, NewServiceKind(), client, deps)
	register(registry, NewTreatmentPlanKind(), client, deps)
	register(registry, NewAdmissionKind(), client, deps)
}

func register[T any](registry *resource.Registry, kind *resource.Kind[T], client *apiclient.Client, deps resource.Deps) {
	if deps.CurrencySymbol != "" {
		kind.Currency = deps.CurrencySymbol
	}
	gateway := repository.NewRestResourceRepository[T](client, kind.Path)
	registry.Register(resource.KindInfo{
		Name:             kind.Name,
		ViewPermission:   kind.ViewPermission,
		ManagePermission: kind.ManagePermission,
	}, func() (resource.Handle, error) {
		return resource.NewScreen(kind, gateway, deps)
	})
}

func (u *screenUsecase) Kinds(session *entity.Session) []dto.KindResponse {
	kinds := u.registry.Kinds()
	out := make([]dto.KindResponse, 0, len(kinds))
	for _, k := range kinds {
		out = append(out, dto.KindResponse{
			Name:      k.Name,
			CanView:   session.Can(k.ViewPermission),
			CanManage: session.Can(k.ManagePermission),
		})
	}
	return out
}

// Mount returns the screen state even when the initial fetch failed; the
// error is returned alongside so the caller can surface it.
func (u *screenUsecase) Mount(ctx context.Context, sessionID, kind string) (*resource.State, error) {
	h, err := u.registry.Mount(ctx, sessionID, kind)
	if h == nil {
		return nil, err
	}
	if err != nil {
		u.log.WithFields(logrus.Fields{"kind": kind}).Warnf("Failed to load screen: %+v", err)
	}
	st := h.State()
	return &st, err
}

func (u *screenUsecase) Unmount(sessionID, kind string) bool {
	return u.registry.Unmount(sessionID, kind)
}

func (u *screenUsecase) View(sessionID, kind string, filter *entity.FilterState) (*resource.State, error) {
	h, err := u.registry.Get(sessionID, kind)
	if err != nil {
		return nil, err
	}
	var st resource.State
	if filter != nil {
		st = h.ApplyFilter(*filter)
	} else {
		st = h.State()
	}
	return &st, nil
}

func (u *screenUsecase) Refresh(ctx context.Context, sessionID, kind string, query url.Values) (*resource.State, error) {
	return u.act(sessionID, kind, func(h resource.Handle) error {
		return h.Refresh(ctx, query)
	})
}

func (u *screenUsecase) OpenModal(sessionID, kind string, req *dto.OpenModalRequest) (*resource.State, error) {
	return u.act(sessionID, kind, func(h resource.Handle) error {
		return h.Open(req.Mode, req.Target)
	})
}

func (u *screenUsecase) CloseModal(sessionID, kind string) (*resource.State, error) {
	return u.act(sessionID, kind, func(h resource.Handle) error {
		h.CloseModal()
		return nil
	})
}

func (u *screenUsecase) UpdateDraft(sessionID, kind string, values map[string]interface{}) (*resource.State, error) {
	return u.act(sessionID, kind, func(h resource.Handle) error {
		_, err := h.SetFields(values)
		return err
	})
}

func (u *screenUsecase) SubmitDraft(ctx context.Context, sessionID, kind string) (*resource.State, error) {
	return u.act(sessionID, kind, func(h resource.Handle) error {
		return h.Submit(ctx)
	})
}

func (u *screenUsecase) SetStatus(ctx context.Context, sessionID, kind string, id entity.ID, status string) (*resource.State, error) {
	return u.act(sessionID, kind, func(h resource.Handle) error {
		return h.SetStatus(ctx, id, status)
	})
}

func (u *screenUsecase) Deactivate(ctx context.Context, sessionID, kind string, id entity.ID) (*resource.State, error) {
	return u.act(sessionID, kind, func(h resource.Handle) error {
		return h.Deactivate(ctx, id)
	})
}

func (u *screenUsecase) Alert(sessionID, kind string) (*entity.Alert, error) {
	h, err := u.registry.Get(sessionID, kind)
	if err != nil {
		return nil, err
	}
	alert := h.Alert()
	return &alert, nil
}

func (u *screenUsecase) DismissAlert(sessionID, kind string, id uuid.UUID) error {
	h, err := u.registry.Get(sessionID, kind)
	if err != nil {
		return err
	}
	if !h.DismissAlert(id) {
		return ErrAlertNotFound
	}
	return nil
}

// act runs fn on a mounted screen and returns the resulting state, also on
// failure, so the toast raised by the screen reaches the client.
func (u *screenUsecase) act(sessionID, kind string, fn func(h resource.Handle) error) (*resource.State, error) {
	h, err := u.registry.Get(sessionID, kind)
	if err != nil {
		return nil, err
	}
	err = fn(h)
	st := h.State()
	return &st, err
}
