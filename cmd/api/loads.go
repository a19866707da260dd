package main

import (
	"net/http"

	"github.com/farxc/painel-seguros/internal/response"
	"github.com/farxc/painel-seguros/internal/store"
)

type GetLoadHistoryResponse = response.APIResponse[[]store.LoadHistory]

// @Summary		Get load history
// @Description	Get a list of the latest spreadsheet loads. Empty when no database is configured.
// @Tags			Loads
// @Produce		json
// @Param			limit	query		int						false	"Limit the number of results"	default(10)
// @Success		200		{object}	GetLoadHistoryResponse	"Successfully retrieved latest loads"
// @Failure		400		{object}	response.ErrorResponse	"Invalid limit"
// @Failure		500		{object}	response.ErrorResponse	"Failed to get load history"
// @Router			/loads/history [get]
func (app *application) handleGetLoadHistory(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r.URL.Query().Get("limit"), 10)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	data, err := app.service.History(r.Context(), limit)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to get load history: "+err.Error())
		return
	}

	response := &GetLoadHistoryResponse{
		Success: true,
		Data:    data,
		Message: "Successfully retrieved latest loads",
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}
