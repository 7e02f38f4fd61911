package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/battleship-server/internal/fleet"
	"github.com/vancomm/battleship-server/internal/session"
)

func sendJSONOrLog(w http.ResponseWriter, logger *logrus.Logger, status int, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		logger.WithError(err).WithField("response", v).Error("unable to encode response")
		return
	}
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(payload); err != nil {
		logger.WithError(err).Error("unable to send response")
	}
}

func sendErrorOrLog(w http.ResponseWriter, logger *logrus.Logger, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.WithError(err).Error("request failed")
	}
	sendJSONOrLog(w, logger, status, wrapError(err))
}

func wrapError(err error) map[string]string {
	return map[string]string{
		"error": err.Error(),
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, fleet.ErrOutOfBounds),
		errors.Is(err, fleet.ErrUnknownRoster),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, fleet.ErrAlreadyRevealed),
		errors.Is(err, fleet.ErrNotInProgress):
		return http.StatusConflict
	case errors.Is(err, fleet.ErrPlacementImpossible),
		errors.Is(err, fleet.ErrSearchExhausted):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
