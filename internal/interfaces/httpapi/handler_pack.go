package httpapi

import (
	"net/http"
	"strings"

	"github.com/futsalverse/futsal-manager/internal/usecase"
)

type openPackDTO struct {
	Team    teamDTO     `json:"team"`
	Players []playerDTO `json:"players"`
}

func (h *Handler) OpenPack(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.OpenPack")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	tier := usecase.PackTier(strings.ToLower(strings.TrimSpace(r.PathValue("tier"))))

	out, err := h.packService.OpenPack(ctx, principal.UserID, teamID, tier)
	if err != nil {
		h.logger.WarnContext(ctx, "open pack failed", "team_id", teamID, "tier", string(tier), "error", err)
		writeError(ctx, w, err)
		return
	}

	players := make([]playerDTO, 0, len(out.Players))
	for _, p := range out.Players {
		players = append(players, playerToDTO(p))
	}
	writeSuccess(ctx, w, http.StatusCreated, openPackDTO{
		Team:    teamToDTO(out.Team),
		Players: players,
	})
}
