package main

import (
	"net/http"
	"strings"

	"github.com/farxc/painel-seguros/internal/painel"
	"github.com/farxc/painel-seguros/internal/response"
	"github.com/go-chi/chi/v5"
)

type GetSheetsResponse = response.APIResponse[*painel.Sheets]
type GetReportResponse = response.APIResponse[*painel.Report]

// @Summary		List tabs
// @Description	Lists the tabs of the configured spreadsheet with their columns and row counts.
// @Tags			Sheets
// @Produce		json
// @Success		200	{object}	GetSheetsResponse		"Successfully retrieved tabs"
// @Failure		502	{object}	response.ErrorResponse	"Spreadsheet could not be loaded"
// @Failure		503	{object}	response.ErrorResponse	"Spreadsheet source not configured"
// @Router			/sheets [get]
func (app *application) handleGetSheets(w http.ResponseWriter, r *http.Request) {
	data, err := app.service.Sheets(r.Context())
	if err != nil {
		app.writeServiceError(w, err)
		return
	}

	response := &GetSheetsResponse{
		Success: true,
		Data:    data,
		Message: "Successfully retrieved tabs",
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

// @Summary		Reload spreadsheet
// @Description	Drops the cached spreadsheet and loads it again.
// @Tags			Sheets
// @Produce		json
// @Success		200	{object}	GetSheetsResponse		"Spreadsheet reloaded"
// @Failure		502	{object}	response.ErrorResponse	"Spreadsheet could not be loaded"
// @Failure		503	{object}	response.ErrorResponse	"Spreadsheet source not configured"
// @Router			/sheets/reload [post]
func (app *application) handleReloadSheets(w http.ResponseWriter, r *http.Request) {
	data, err := app.service.Reload(r.Context())
	if err != nil {
		app.writeServiceError(w, err)
		return
	}

	response := &GetSheetsResponse{
		Success: true,
		Data:    data,
		Message: "Spreadsheet reloaded",
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

// @Summary		Tab report
// @Description	Filters a tab and returns its records, counters, premium sum and per-day premium series.
// @Tags			Sheets
// @Produce		json
// @Param			tab				path		string					true	"Tab name"
// @Param			collaborator	query		string					false	"Exact collaborator name (todos = any)"
// @Param			status			query		string					false	"Status label (todos = any)"
// @Param			q				query		string					false	"Search over insured, policy and tax id"
// @Success		200				{object}	GetReportResponse		"Successfully built report"
// @Failure		400				{object}	response.ErrorResponse	"Missing tab"
// @Failure		404				{object}	response.ErrorResponse	"Unknown tab"
// @Failure		422				{object}	response.ErrorResponse	"Mandatory column missing"
// @Failure		502				{object}	response.ErrorResponse	"Spreadsheet could not be loaded"
// @Failure		503				{object}	response.ErrorResponse	"Spreadsheet source not configured"
// @Router			/sheets/{tab}/report [get]
func (app *application) handleGetReport(w http.ResponseWriter, r *http.Request) {
	tab := chi.URLParam(r, "tab")
	if strings.TrimSpace(tab) == "" {
		writeJSONError(w, http.StatusBadRequest, "tab is required")
		return
	}

	data, err := app.service.Report(r.Context(), tab, criteriaFromQuery(r.URL.Query()))
	if err != nil {
		app.writeServiceError(w, err)
		return
	}

	response := &GetReportResponse{
		Success: true,
		Data:    data,
		Message: "Successfully built report",
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}
