package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/AmirRezaM75/algobattle/entities"
	"github.com/AmirRezaM75/algobattle/pkg/logx"
	"github.com/AmirRezaM75/algobattle/schemas"

	"go.uber.org/zap"
)

func decode(payload any, r *http.Request) error {
	d := json.NewDecoder(r.Body)

	d.DisallowUnknownFields()

	err := d.Decode(payload)
	if err != nil {
		return err
	}

	return nil
}

func encode(body any, w http.ResponseWriter) {
	response, err := json.Marshal(body)
	if err != nil {
		logx.Logger.Error(err.Error(), zap.String("desc", "could not marshal response"))
		return
	}

	_, err = w.Write(response)
	if err != nil {
		logx.Logger.Error(err.Error(), zap.String("desc", "could not write response"))
		return
	}
}

func respond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encode(body, w)
}

var statusByReason = map[string]int{
	"ROOM_NOT_FOUND":              http.StatusNotFound,
	"UNKNOWN_PLAYER":              http.StatusNotFound,
	"UNKNOWN_ALGORITHM":           http.StatusNotFound,
	"NOT_HOST":                    http.StatusForbidden,
	"ROOM_FULL":                   http.StatusConflict,
	"DUPLICATE_NAME":              http.StatusConflict,
	"ROOM_NOT_ACCEPTING":          http.StatusConflict,
	"ALGORITHM_ALREADY_TAKEN":     http.StatusConflict,
	"NOT_READY":                   http.StatusConflict,
	"NOT_IN_BATTLE":               http.StatusConflict,
	"INVALID_CONFIGURATION":       http.StatusUnprocessableEntity,
	"ALGORITHM_CATEGORY_MISMATCH": http.StatusUnprocessableEntity,
	"INPUT_SIZE_MISMATCH":         http.StatusUnprocessableEntity,
	"MISSING_TARGET":              http.StatusUnprocessableEntity,
	"UNEXPECTED_TARGET":           http.StatusUnprocessableEntity,
	"INVALID_INPUT":               http.StatusUnprocessableEntity,
}

// fail writes err with its machine-readable reason. Errors without a
// reason are logged and hidden from the client.
func fail(w http.ResponseWriter, err error) {
	reason := entities.Reason(err)

	status, known := statusByReason[reason]

	if !known {
		logx.Logger.Error(err.Error(), zap.String("desc", "unexpected error while handling request"))
		respond(w, http.StatusInternalServerError, schemas.ErrorResponse{Message: "Something goes wrong!"})
		return
	}

	respond(w, status, schemas.ErrorResponse{Message: err.Error(), Reason: reason})
}

func invalidPayload(w http.ResponseWriter, err error) {
	logx.Logger.Info(err.Error(), zap.String("desc", "could not decode payload"))
	respond(w, http.StatusUnprocessableEntity, schemas.ErrorResponse{Message: "Payload is not valid.", Reason: "INVALID_PAYLOAD"})
}
