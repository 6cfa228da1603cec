package overtime

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/rootslab/opsfinance/internal/transport"
	"github.com/rootslab/opsfinance/pkg/logger"
)

type ServiceAPI interface {
	ListOvertimes(query ListQuery) (*ListResult, error)
	CreateOvertime(ctx context.Context, dto CreateOvertimeDTO) (*Overtime, error)
	UpdateOvertime(ctx context.Context, id string, dto CreateOvertimeDTO) (*Overtime, error)
	UpdateStatus(ctx context.Context, id string, dto UpdateStatusDTO) error
	DeleteOvertime(ctx context.Context, id string) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) ListOvertimes(w http.ResponseWriter, r *http.Request) {
	query := ListQuery{
		Month:  r.URL.Query().Get("month"),
		Search: r.URL.Query().Get("q"),
	}
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil {
			query.Page = p
		}
	}
	if perStr := r.URL.Query().Get("per_page"); perStr != "" {
		if p, err := strconv.Atoi(perStr); err == nil {
			query.PerPage = p
		}
	}

	result, err := h.Service.ListOvertimes(query)
	if err != nil {
		h.Logger.Error("ListOvertimes: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) CreateOvertime(w http.ResponseWriter, r *http.Request) {
	var dto CreateOvertimeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateOvertime: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.Service.CreateOvertime(r.Context(), dto)
	if err != nil {
		h.Logger.Error("CreateOvertime: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, entry.ToResponse())
}

func (h *Handler) UpdateOvertime(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var dto CreateOvertimeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateOvertime: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.Service.UpdateOvertime(r.Context(), id, dto)
	if err != nil {
		h.Logger.Error("UpdateOvertime: service error", "error", err, "overtime_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, entry.ToResponse())
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var dto UpdateStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateStatus: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.UpdateStatus(r.Context(), id, dto); err != nil {
		h.Logger.Error("UpdateStatus: service error", "error", err, "overtime_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"status": dto.Status})
}

func (h *Handler) DeleteOvertime(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Service.DeleteOvertime(r.Context(), id); err != nil {
		h.Logger.Error("DeleteOvertime: service error", "error", err, "overtime_id", id)
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
