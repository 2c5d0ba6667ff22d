package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"github.com/avc-dev/tag-registry/internal/usecase"
	"go.uber.org/zap"
)

// IssueBatch обрабатывает POST /admin/issue-batch.
// Параметры count, len, batch_id, domain принимаются из формы или query;
// ответ — CSV-вложение со строками uuid,short,url.
func (h *Handler) IssueBatch(w http.ResponseWriter, req *http.Request) {
	if err := req.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	params := usecase.IssueBatchParams{
		Count:   intParam(req, "count"),
		Length:  intParam(req, "len"),
		BatchID: req.FormValue("batch_id"),
		Domain:  req.FormValue("domain"),
	}

	rows, err := h.usecase.IssueBatch(req.Context(), params)
	if err != nil {
		h.handleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "batch.csv"))
	w.WriteHeader(http.StatusOK)

	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"uuid", "short", "url"}); err != nil {
		h.logger.Error("failed to write CSV header", zap.Error(err))
		return
	}
	for _, row := range rows {
		if err := writer.Write([]string{row.UUID, row.Short.String(), row.PublicURL}); err != nil {
			h.logger.Error("failed to write CSV row", zap.Error(err))
			return
		}
	}
	writer.Flush()
}

// intParam читает целочисленный параметр формы или query, 0 если нет
func intParam(req *http.Request, name string) int {
	value, err := strconv.Atoi(req.FormValue(name))
	if err != nil {
		return 0
	}
	return value
}
