package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/riskibarqy/dietpop-lineup/internal/domain/pop"
	"github.com/riskibarqy/dietpop-lineup/internal/usecase"
)

func (h *Handler) ListPops(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPops")
	defer span.End()

	ownerID := ownerFromContext(ctx)
	query := r.URL.Query()
	filter := pop.Filter{
		Brand:  strings.TrimSpace(query.Get("brand")),
		Search: strings.TrimSpace(query.Get("search")),
	}
	if raw := strings.TrimSpace(query.Get("custom_only")); raw != "" {
		customOnly, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: custom_only must be a boolean", usecase.ErrInvalidInput))
			return
		}
		filter.CustomOnly = customOnly
	}

	items, err := h.catalogService.Filter(ctx, ownerID, filter)
	if err != nil {
		h.logger.WarnContext(ctx, "list pops failed", "owner_id", ownerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, popsToDTO(items))
}

func (h *Handler) GetPop(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPop")
	defer span.End()

	ownerID := ownerFromContext(ctx)
	popID := strings.TrimSpace(r.PathValue("popID"))
	item, found, err := h.catalogService.GetByID(ctx, ownerID, popID)
	if err != nil {
		h.logger.WarnContext(ctx, "get pop failed", "owner_id", ownerID, "pop_id", popID, "error", err)
		writeError(ctx, w, err)
		return
	}
	if !found {
		writeError(ctx, w, fmt.Errorf("%w: pop id=%s", usecase.ErrNotFound, popID))
		return
	}

	writeSuccess(ctx, w, http.StatusOK, popToDTO(item))
}

func (h *Handler) ListBrands(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListBrands")
	defer span.End()

	ownerID := ownerFromContext(ctx)
	brands, err := h.catalogService.ListBrands(ctx, ownerID)
	if err != nil {
		h.logger.WarnContext(ctx, "list brands failed", "owner_id", ownerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, brands)
}

func (h *Handler) CreateCustomPop(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateCustomPop")
	defer span.End()

	ownerID := ownerFromContext(ctx)
	var req createCustomPopRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.catalogService.AddCustom(ctx, ownerID, usecase.CreateCustomPopInput{
		Name:           req.Name,
		Brand:          req.Brand,
		Flavor:         req.Flavor,
		PrimaryColor:   req.PrimaryColor,
		SecondaryColor: req.SecondaryColor,
		AccentColor:    req.AccentColor,
		Description:    req.Description,
		Caffeine:       req.Caffeine,
		Calories:       req.Calories,
		BaseBrand:      req.BaseBrand,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create custom pop failed", "owner_id", ownerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, popToDTO(item))
}

func (h *Handler) DeleteCustomPop(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteCustomPop")
	defer span.End()

	ownerID := ownerFromContext(ctx)
	popID := strings.TrimSpace(r.PathValue("popID"))
	if err := h.catalogService.RemoveCustom(ctx, ownerID, popID); err != nil {
		h.logger.WarnContext(ctx, "delete custom pop failed", "owner_id", ownerID, "pop_id", popID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"deleted": popID})
}
