package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/samarqand/backoffice-go/internal/domain/payroll"
	"github.com/samarqand/backoffice-go/internal/handler/http/response"
	"github.com/samarqand/backoffice-go/internal/pkg/validator"
)

type PayrollHandler interface {
	Generate(w http.ResponseWriter, r *http.Request)
	CreateEntry(w http.ResponseWriter, r *http.Request)
	DeleteEntry(w http.ResponseWriter, r *http.Request)
	ListEntries(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

func (h *payrollHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	var req payroll.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.Generate(r.Context(), actorFromRequest(r), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var req payroll.CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.CreateEntry(r.Context(), actorFromRequest(r), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll entry created", result)
}

func (h *payrollHandlerImpl) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.BadRequest(w, "Invalid Entry ID", nil)
		return
	}

	if err := h.payrollService.DeleteEntry(r.Context(), actorFromRequest(r), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll entry deleted", nil)
}

func (h *payrollHandlerImpl) ListEntries(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := payroll.EntryFilter{}
	if workerID := query.Get("worker_id"); workerID != "" {
		filter.WorkerID = &workerID
	}
	if yearStr := query.Get("year"); yearStr != "" {
		if year, err := strconv.Atoi(yearStr); err == nil {
			filter.Year = &year
		}
	}
	if monthStr := query.Get("month"); monthStr != "" {
		if month, err := strconv.Atoi(monthStr); err == nil {
			filter.Month = &month
		}
	}
	if kind := query.Get("kind"); kind != "" {
		filter.Kind = &kind
	}
	filter.Page, _ = strconv.Atoi(query.Get("page"))
	filter.Limit, _ = strconv.Atoi(query.Get("limit"))

	result, err := h.payrollService.ListEntries(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Entries, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}
