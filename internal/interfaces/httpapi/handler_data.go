package httpapi

import (
	"fmt"
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/riskibarqy/dietpop-lineup/internal/usecase"
)

func (h *Handler) ExportData(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ExportData")
	defer span.End()

	ownerID := ownerFromContext(ctx)
	bundle, err := h.dataService.Export(ctx, ownerID)
	if err != nil {
		h.logger.WarnContext(ctx, "export data failed", "owner_id", ownerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	filename := fmt.Sprintf("dietpop-lineup-%s.json", bundle.ExportedAt.UTC().Format("2006-01-02"))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	writeSuccess(ctx, w, http.StatusOK, exportBundleToDTO(ctx, bundle))
}

// ImportData accepts an export file, either bare or inside the response
// envelope written by ExportData.
func (h *Handler) ImportData(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ImportData")
	defer span.End()

	ownerID := ownerFromContext(ctx)
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: read body: %v", usecase.ErrInvalidInput, err))
		return
	}

	var wrapped struct {
		Data *exportBundleDTO `json:"data"`
	}
	var req exportBundleDTO
	if err := jsoniter.Unmarshal(raw, &wrapped); err == nil && wrapped.Data != nil {
		req = *wrapped.Data
	} else if err := jsoniter.Unmarshal(raw, &req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}

	input, err := importInputFromDTO(req)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.dataService.Import(ctx, ownerID, input)
	if err != nil {
		h.logger.WarnContext(ctx, "import data failed", "owner_id", ownerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, importResultDTO{
		Lineup:     result.Lineup,
		CustomPops: result.CustomPops,
		Settings:   result.Settings,
	})
}

func (h *Handler) ClearData(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ClearData")
	defer span.End()

	ownerID := ownerFromContext(ctx)
	if err := h.dataService.ClearAll(ctx, ownerID); err != nil {
		h.logger.WarnContext(ctx, "clear data failed", "owner_id", ownerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "cleared"})
}

func (h *Handler) GetStorageInfo(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStorageInfo")
	defer span.End()

	ownerID := ownerFromContext(ctx)
	info, err := h.dataService.StorageInfo(ctx, ownerID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, storageInfoDTO{
		Lineup:         info.Lineup,
		CustomPops:     info.CustomPops,
		Settings:       info.Settings,
		Total:          info.Total,
		TotalFormatted: info.TotalFormatted,
	})
}
