package httpapi

import (
	"net/http"

	"github.com/riskibarqy/dietpop-lineup/internal/domain/lineup"
)

func (h *Handler) ListPositions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPositions")
	defer span.End()

	positions := lineup.AllPositions()
	items := make([]positionDTO, 0, len(positions))
	for _, p := range positions {
		items = append(items, positionToDTO(p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLineup")
	defer span.End()

	ownerID := ownerFromContext(ctx)
	item, err := h.lineupService.Current(ctx, ownerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get lineup failed", "owner_id", ownerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, lineupToDTO(ctx, item))
}

func (h *Handler) AssignPosition(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AssignPosition")
	defer span.End()

	ownerID := ownerFromContext(ctx)
	pos, err := parsePosition(r.PathValue("position"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req assignPopRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.lineupService.Assign(ctx, ownerID, req.PopID, pos)
	if err != nil {
		h.logger.WarnContext(ctx, "assign pop failed", "owner_id", ownerID, "position", pos.String(), "pop_id", req.PopID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, lineupToDTO(ctx, item))
}

func (h *Handler) ClearPosition(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ClearPosition")
	defer span.End()

	ownerID := ownerFromContext(ctx)
	pos, err := parsePosition(r.PathValue("position"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.lineupService.Remove(ctx, ownerID, pos)
	if err != nil {
		h.logger.WarnContext(ctx, "clear position failed", "owner_id", ownerID, "position", pos.String(), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, lineupToDTO(ctx, item))
}

func (h *Handler) SwapPositions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SwapPositions")
	defer span.End()

	ownerID := ownerFromContext(ctx)
	var req swapPositionsRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	a, err := parsePosition(req.PositionA)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	b, err := parsePosition(req.PositionB)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.lineupService.Swap(ctx, ownerID, a, b)
	if err != nil {
		h.logger.WarnContext(ctx, "swap positions failed", "owner_id", ownerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, lineupToDTO(ctx, item))
}

func (h *Handler) MovePop(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.MovePop")
	defer span.End()

	ownerID := ownerFromContext(ctx)
	var req movePopRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	from, err := parsePosition(req.From)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	to, err := parsePosition(req.To)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.lineupService.Move(ctx, ownerID, from, to)
	if err != nil {
		h.logger.WarnContext(ctx, "move pop failed", "owner_id", ownerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, lineupToDTO(ctx, item))
}

func (h *Handler) ClearLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ClearLineup")
	defer span.End()

	ownerID := ownerFromContext(ctx)
	item, err := h.lineupService.Clear(ctx, ownerID)
	if err != nil {
		h.logger.WarnContext(ctx, "clear lineup failed", "owner_id", ownerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, lineupToDTO(ctx, item))
}

func (h *Handler) RenameLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RenameLineup")
	defer span.End()

	ownerID := ownerFromContext(ctx)
	var req renameLineupRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.lineupService.Rename(ctx, ownerID, req.Name)
	if err != nil {
		h.logger.WarnContext(ctx, "rename lineup failed", "owner_id", ownerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, lineupToDTO(ctx, item))
}

func (h *Handler) GetLineupStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLineupStats")
	defer span.End()

	ownerID := ownerFromContext(ctx)
	summary, err := h.lineupService.Summary(ctx, ownerID)
	if err != nil {
		h.logger.WarnContext(ctx, "lineup stats failed", "owner_id", ownerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, summaryToDTO(ctx, summary))
}
