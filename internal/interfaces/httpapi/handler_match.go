package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/futsalverse/futsal-manager/internal/domain/match"
	"github.com/futsalverse/futsal-manager/internal/domain/sheet"
)

type playMatchRequest struct {
	SheetID    string `json:"sheetId" validate:"required"`
	Difficulty int    `json:"difficulty" validate:"min=0,max=10"`
}

type matchDTO struct {
	ID                 string `json:"id"`
	PlayerTeamID       string `json:"playerTeamId"`
	CPUTeamID          string `json:"cpuTeamId"`
	CPUTeamName        string `json:"cpuTeamName"`
	PlayerScore        int    `json:"playerScore"`
	CPUScore           int    `json:"cpuScore"`
	PlayerAverageSkill int    `json:"playerAverageSkill"`
	CPUAverageSkill    int    `json:"cpuAverageSkill"`
	CoinsReward        int    `json:"coinsReward"`
	PlayedAt           string `json:"playedAt"`
}

type goalDTO struct {
	TeamID         string `json:"teamId"`
	Minute         int    `json:"minute"`
	ScorerSlot     string `json:"scorerSlot"`
	ScorerPlayerID string `json:"scorerPlayerId"`
	AssistSlot     string `json:"assistSlot,omitempty"`
	AssistPlayerID string `json:"assistPlayerId,omitempty"`
}

type playMatchDTO struct {
	Match             matchDTO          `json:"match"`
	Goals             []goalDTO         `json:"goals"`
	PlayerTeam        teamDTO           `json:"playerTeam"`
	CPUTeam           teamDTO           `json:"cpuTeam"`
	PlayerLineupNames map[string]string `json:"playerLineupNames"`
	CPULineupNames    map[string]string `json:"cpuLineupNames"`
}

func matchToDTO(v match.Result) matchDTO {
	return matchDTO{
		ID:                 v.ID,
		PlayerTeamID:       v.PlayerTeamID,
		CPUTeamID:          v.CPUTeamID,
		CPUTeamName:        v.CPUTeamName,
		PlayerScore:        v.PlayerScore,
		CPUScore:           v.CPUScore,
		PlayerAverageSkill: v.PlayerAverageSkill,
		CPUAverageSkill:    v.CPUAverageSkill,
		CoinsReward:        v.CoinsReward,
		PlayedAt:           v.PlayedAt.UTC().Format(time.RFC3339),
	}
}

func goalsToDTO(goals []match.Goal) []goalDTO {
	items := make([]goalDTO, 0, len(goals))
	for _, g := range goals {
		items = append(items, goalDTO{
			TeamID:         g.TeamID,
			Minute:         g.Minute,
			ScorerSlot:     string(g.ScorerSlot),
			ScorerPlayerID: g.ScorerPlayerID,
			AssistSlot:     string(g.AssistSlot),
			AssistPlayerID: g.AssistPlayerID,
		})
	}
	return items
}

func lineupNamesToDTO(names map[sheet.Slot]string) map[string]string {
	out := make(map[string]string, len(names))
	for slot, name := range names {
		out[string(slot)] = name
	}
	return out
}

func (h *Handler) PlayMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PlayMatch")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req playMatchRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	out, err := h.matchService.PlayAgainstCPU(ctx, principal.UserID, teamID, req.SheetID, req.Difficulty)
	if err != nil {
		h.logger.WarnContext(ctx, "play match failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, playMatchDTO{
		Match:             matchToDTO(out.Result),
		Goals:             goalsToDTO(out.Goals),
		PlayerTeam:        teamToDTO(out.PlayerTeam),
		CPUTeam:           teamToDTO(out.CPUTeam),
		PlayerLineupNames: lineupNamesToDTO(out.PlayerLineupNames),
		CPULineupNames:    lineupNamesToDTO(out.CPULineupNames),
	})
}

func (h *Handler) ListMatchHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchHistory")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	results, err := h.matchService.History(ctx, principal.UserID, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "list match history failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchDTO, 0, len(results))
	for _, m := range results {
		items = append(items, matchToDTO(m))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	result, goals, err := h.matchService.Get(ctx, principal.UserID, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, struct {
		Match matchDTO  `json:"match"`
		Goals []goalDTO `json:"goals"`
	}{matchToDTO(result), goalsToDTO(goals)})
}
