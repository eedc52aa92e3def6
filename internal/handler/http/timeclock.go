package http

import (
	"encoding/json"
	"net/http"

	"github.com/samarqand/backoffice-go/internal/domain/timeclock"
	"github.com/samarqand/backoffice-go/internal/handler/http/response"
)

type TimeclockHandler interface {
	Import(w http.ResponseWriter, r *http.Request)
	ImportFolder(w http.ResponseWriter, r *http.Request)
}

type timeclockHandlerImpl struct {
	importService timeclock.ImportService
}

func NewTimeclockHandler(importService timeclock.ImportService) TimeclockHandler {
	return &timeclockHandlerImpl{importService: importService}
}

func (h *timeclockHandlerImpl) Import(w http.ResponseWriter, r *http.Request) {
	var req timeclock.ImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.importService.Import(r.Context(), actorFromRequest(r), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *timeclockHandlerImpl) ImportFolder(w http.ResponseWriter, r *http.Request) {
	var req timeclock.FolderImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.importService.ImportFolder(r.Context(), actorFromRequest(r), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
