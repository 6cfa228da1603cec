package report

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/rootslab/opsfinance/internal/transport"
	"github.com/rootslab/opsfinance/pkg/logger"
)

type ServiceAPI interface {
	MonthlyDocument(yearMonth string) (*Document, error)
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

// ExportMonthly streams the month's workbook as an attachment.
func (h *Handler) ExportMonthly(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")

	doc, err := h.Service.MonthlyDocument(month)
	if err != nil {
		h.Logger.Error("ExportMonthly: service error", "error", err, "month", month)
		h.HandleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", Filename(month)))

	if err := WriteXLSX(doc, w); err != nil {
		// headers are already out; all we can do is log
		h.Logger.Error("ExportMonthly: failed to write workbook", "error", err, "month", month)
	}
}
