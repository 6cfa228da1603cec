package dashboard

import (
	"log/slog"
	"net/http"

	"github.com/rootslab/opsfinance/internal/transport"
	"github.com/rootslab/opsfinance/pkg/logger"
)

type ServiceAPI interface {
	Summarize(query SummaryQuery) (*Summary, error)
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

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	query := SummaryQuery{
		Month:  r.URL.Query().Get("month"),
		Search: r.URL.Query().Get("q"),
	}

	summary, err := h.Service.Summarize(query)
	if err != nil {
		h.Logger.Error("GetSummary: service error", "error", err, "month", query.Month)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, summary)
}
