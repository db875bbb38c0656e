package handlers

import (
	"context"
	"net/http"

	"sheetr/services/export"
)

type exportService interface {
	Snapshot(ctx context.Context, titles []string) ([]string, error)
}

var _ exportService = (*export.Service)(nil)

// ExportHandler triggers a local JSON snapshot of the configured sheets.
type ExportHandler struct {
	Service exportService
	Titles  []string
}

func NewExportHandler(service exportService, titles []string) *ExportHandler {
	return &ExportHandler{Service: service, Titles: titles}
}

// Run snapshots every configured sheet and reports the written files.
func (h *ExportHandler) Run(w http.ResponseWriter, r *http.Request) {
	files, err := h.Service.Snapshot(r.Context(), h.Titles)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, map[string][]string{"files": files})
}

func (h *ExportHandler) Options(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
