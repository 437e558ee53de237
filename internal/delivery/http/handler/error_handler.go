package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go-clinic-dashboard/internal/delivery/http/middleware"
	"go-clinic-dashboard/internal/domain/entity"
	"go-clinic-dashboard/internal/resource"
	"go-clinic-dashboard/internal/service"
	"go-clinic-dashboard/internal/usecase"
	"go-clinic-dashboard/pkg/apiclient"
	"go-clinic-dashboard/pkg/response"

	"github.com/sirupsen/logrus"
)

// SessionInvalidator drops a session whose upstream token was rejected.
type SessionInvalidator interface {
	InvalidateSession(ctx context.Context, sessionID string) error
}

// ErrorResponder maps usecase, screen and upstream failures to responses.
// data, when non-nil, is sent along so the client can render the toast the
// failure raised.
type ErrorResponder struct {
	sessions SessionInvalidator
	log      *logrus.Logger
}

func NewErrorResponder(sessions SessionInvalidator, log *logrus.Logger) *ErrorResponder {
	return &ErrorResponder{sessions: sessions, log: log}
}

func (e *ErrorResponder) Respond(w http.ResponseWriter, r *http.Request, err error, fallback string, data interface{}) {
	var verr *resource.ValidationError
	switch {
	case errors.As(err, &verr):
		var fields map[string]string
		if verr.Field != "" {
			fields = map[string]string{verr.Field: verr.Message}
		}
		response.Failure(w, http.StatusBadRequest, verr.Message, fields, data)

	case apiclient.IsUnauthorized(err):
		if session, ok := middleware.GetSessionFromContext(r.Context()); ok {
			if ierr := e.sessions.InvalidateSession(context.WithoutCancel(r.Context()), session.ID); ierr != nil {
				e.log.Warnf("Failed to invalidate session: %+v", ierr)
			}
		}
		response.SessionExpired(w, apiclient.MessageSessionExpired)
	case apiclient.IsNetwork(err):
		response.Failure(w, http.StatusBadGateway, apiclient.MessageNetwork, nil, data)
	case apiclient.StatusOf(err) == http.StatusForbidden:
		response.Failure(w, http.StatusForbidden, apiclient.MessageForbidden, nil, data)
	case apiclient.StatusOf(err) == http.StatusNotFound:
		response.Failure(w, http.StatusNotFound, apiclient.MessageNotFound, nil, data)
	case apiclient.StatusOf(err) >= 400 && apiclient.StatusOf(err) < 500:
		response.Failure(w, http.StatusBadRequest, apiclient.UserMessage(err), upstreamDetail(err), data)
	case apiclient.StatusOf(err) >= 500:
		response.Failure(w, http.StatusBadGateway, apiclient.MessageServer, nil, data)

	case errors.Is(err, resource.ErrUnknownKind):
		response.NotFound(w, "Unknown resource kind")
	case errors.Is(err, resource.ErrScreenNotMounted):
		response.Conflict(w, "Screen is not mounted")
	case errors.Is(err, resource.ErrSubmitInFlight),
		errors.Is(err, resource.ErrNoDraft):
		response.Failure(w, http.StatusConflict, err.Error(), nil, data)
	case errors.Is(err, resource.ErrRecordNotFound),
		errors.Is(err, usecase.ErrAlertNotFound):
		response.Failure(w, http.StatusNotFound, err.Error(), nil, data)
	case errors.Is(err, resource.ErrInvalidStatus),
		errors.Is(err, resource.ErrStatusNotSupported),
		errors.Is(err, resource.ErrNotDeactivatable),
		errors.Is(err, resource.ErrInvalidModalMode),
		errors.Is(err, entity.ErrModalTargetRequired),
		errors.Is(err, usecase.ErrInvalidPeriod),
		errors.Is(err, usecase.ErrInvalidRiskScore):
		response.Failure(w, http.StatusBadRequest, err.Error(), nil, data)
	case errors.Is(err, resource.ErrRegistryStopped),
		errors.Is(err, service.ErrJournalDisabled):
		response.ServiceUnavailable(w, err.Error())

	default:
		e.log.Errorf("%s: %+v", fallback, err)
		response.Failure(w, http.StatusInternalServerError, fallback, nil, data)
	}
}

// upstreamDetail returns the upstream error body, as JSON when it parses.
func upstreamDetail(err error) interface{} {
	var he *apiclient.HTTPError
	if !errors.As(err, &he) || he.Body == "" {
		return nil
	}
	var detail interface{}
	if json.Unmarshal([]byte(he.Body), &detail) == nil {
		return detail
	}
	return he.Body
}
