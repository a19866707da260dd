package main

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/farxc/painel-seguros/internal/painel/types"
	"github.com/farxc/painel-seguros/internal/response"
)

func writeJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")

	w.WriteHeader(status)

	return json.NewEncoder(w).Encode(data)
}

func writeJSONError(w http.ResponseWriter, status int, message string) error {
	return writeJSON(w, status, &response.ErrorResponse{Error: message})
}

// writeServiceError maps pipeline errors to HTTP statuses.
func (app *application) writeServiceError(w http.ResponseWriter, err error) {
	const component = "API"

	var (
		loadErr     *types.LoadError
		schemaErr   *types.SchemaError
		notFoundErr *types.TabNotFoundError
	)

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, types.ErrConfigMissing):
		status = http.StatusServiceUnavailable
	case errors.As(err, &loadErr):
		status = http.StatusBadGateway
	case errors.As(err, &schemaErr):
		status = http.StatusUnprocessableEntity
	case errors.As(err, &notFoundErr):
		status = http.StatusNotFound
	}

	if status >= http.StatusInternalServerError {
		app.appLogger.Error(component, "Request failed: status=%d err=%v", status, err)
	}
	writeJSONError(w, status, err.Error())
}
