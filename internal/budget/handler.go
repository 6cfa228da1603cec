package budget

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/rootslab/opsfinance/internal/transport"
	"github.com/rootslab/opsfinance/pkg/logger"
)

type ServiceAPI interface {
	Current() (int64, error)
	Update(ctx context.Context, dto UpdateBudgetDTO) error
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

func (h *Handler) GetBudget(w http.ResponseWriter, r *http.Request) {
	amount, err := h.Service.Current()
	if err != nil {
		h.Logger.Error("GetBudget: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, BudgetResponse{Amount: amount})
}

func (h *Handler) UpdateBudget(w http.ResponseWriter, r *http.Request) {
	var dto UpdateBudgetDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateBudget: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.Update(r.Context(), dto); err != nil {
		h.Logger.Error("UpdateBudget: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, BudgetResponse{Amount: dto.Amount})
}
