package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/roster-manager/internal/domain/roster"
	"github.com/riskibarqy/roster-manager/internal/platform/logging"
	"github.com/riskibarqy/roster-manager/internal/usecase"
)

type Handler struct {
	rosterService *usecase.RosterService
	logger        *logging.Logger
	validator     *validator.Validate
}

func NewHandler(rosterService *usecase.RosterService, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		rosterService: rosterService,
		logger:        logger,
		validator:     validator.New(),
	}
}

// Healthz deliberately skips the response envelope: probes and existing
// clients expect the bare {"status":"healthy"} body.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeJSON(ctx, w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type createPlayerRequest struct {
	Name     string  `json:"name" validate:"required"`
	Position string  `json:"position" validate:"required,oneof=GK DF CM FW"`
	Club     string  `json:"club" validate:"required"`
	Value    float64 `json:"value" validate:"gte=0"`
}

type playerDTO struct {
	Name     string  `json:"name"`
	Position string  `json:"position"`
	Club     string  `json:"club"`
	Value    float64 `json:"value"`
}

func playerToDTO(p roster.Player) playerDTO {
	return playerDTO{
		Name:     p.Name,
		Position: string(p.Position),
		Club:     p.Club,
		Value:    p.Value,
	}
}
