package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"

	"github.com/riskibarqy/dietpop-lineup/internal/platform/kvstore"
	"github.com/riskibarqy/dietpop-lineup/internal/platform/logging"
	"github.com/riskibarqy/dietpop-lineup/internal/usecase"
)

// maxBodyBytes bounds request payloads; imports carry at most a lineup, a
// custom pop list and settings.
const maxBodyBytes = 1 << 20

type Handler struct {
	lineupService   *usecase.LineupService
	catalogService  *usecase.CatalogService
	settingsService *usecase.SettingsService
	dataService     *usecase.DataService
	readiness       kvstore.Pinger
	logger          *logging.Logger
	validator       *validator.Validate
}

func NewHandler(
	lineupService *usecase.LineupService,
	catalogService *usecase.CatalogService,
	settingsService *usecase.SettingsService,
	dataService *usecase.DataService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		lineupService:   lineupService,
		catalogService:  catalogService,
		settingsService: settingsService,
		dataService:     dataService,
		logger:          logger,
		validator:       validator.New(),
	}
}

// SetReadiness makes /readyz ping the storage backend.
func (h *Handler) SetReadiness(p kvstore.Pinger) {
	h.readiness = p
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeJSON reads a single JSON object from the body, rejecting unknown
// fields, then validates it.
func (h *Handler) decodeJSON(ctx context.Context, r *http.Request, dst any) error {
	decoder := jsoniter.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, dst)
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Readyz")
	defer span.End()

	if h.readiness != nil {
		if err := h.readiness.Ping(ctx); err != nil {
			h.logger.WarnContext(ctx, "storage ping failed", "error", err)
			writeError(ctx, w, fmt.Errorf("%w: storage ping failed", usecase.ErrDependencyUnavailable))
			return
		}
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ready"})
}
