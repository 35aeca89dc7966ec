package httpapi

import (
	"context"
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/futsalverse/futsal-manager/internal/domain/user"
	"github.com/futsalverse/futsal-manager/internal/platform/logging"
	"github.com/futsalverse/futsal-manager/internal/usecase"
)

type Handler struct {
	authService  *usecase.AuthService
	teamService  *usecase.TeamService
	sheetService *usecase.SheetService
	matchService *usecase.MatchService
	packService  *usecase.PackService
	statsService *usecase.StatsService
	logger       *logging.Logger
	validator    *validator.Validate
}

func NewHandler(
	authService *usecase.AuthService,
	teamService *usecase.TeamService,
	sheetService *usecase.SheetService,
	matchService *usecase.MatchService,
	packService *usecase.PackService,
	statsService *usecase.StatsService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.NewNop()
	}

	return &Handler{
		authService:  authService,
		teamService:  teamService,
		sheetService: sheetService,
		matchService: matchService,
		packService:  packService,
		statsService: statsService,
		logger:       logger,
		validator:    validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) RunRebuildRecordsJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRebuildRecordsJob")
	defer span.End()

	out, err := h.statsService.RebuildRecords(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "rebuild records job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]int{
		"teamsScanned": out.TeamsScanned,
		"teamsFixed":   out.TeamsFixed,
	})
}

func (h *Handler) decodeJSON(ctx context.Context, r *http.Request, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, dst)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func requirePrincipal(ctx context.Context) (user.Principal, error) {
	principal, ok := principalFromContext(ctx)
	if !ok {
		return user.Principal{}, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized)
	}
	return principal, nil
}
