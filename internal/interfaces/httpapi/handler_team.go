package httpapi

import (
	"net/http"
	"strings"

	"github.com/futsalverse/futsal-manager/internal/domain/player"
	"github.com/futsalverse/futsal-manager/internal/domain/team"
)

type createTeamRequest struct {
	Name string `json:"name" validate:"required,min=3,max=32"`
}

type renameTeamRequest struct {
	Name string `json:"name" validate:"required,min=3,max=32"`
}

type sellPlayersRequest struct {
	PlayerIDs []string `json:"playerIds" validate:"required,min=1,dive,required"`
}

type teamDTO struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Wins          int    `json:"wins"`
	Draws         int    `json:"draws"`
	Losses        int    `json:"losses"`
	MatchesPlayed int    `json:"matchesPlayed"`
	Coins         int    `json:"coins"`
}

type playerDTO struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	PreferredPosition string `json:"preferredPosition"`
	Skill             int    `json:"skill"`
	StaminaLeft       int    `json:"staminaLeft"`
	MatchesPlayed     int    `json:"matchesPlayed"`
	GoalsScored       int    `json:"goalsScored"`
	AssistsMade       int    `json:"assistsMade"`
}

type sellPlayersDTO struct {
	Team       teamDTO `json:"team"`
	TotalPrice int     `json:"totalPrice"`
}

func teamToDTO(v team.Team) teamDTO {
	return teamDTO{
		ID:            v.ID,
		Name:          v.Name,
		Wins:          v.Wins,
		Draws:         v.Draws,
		Losses:        v.Losses,
		MatchesPlayed: v.MatchesPlayed(),
		Coins:         v.Coins,
	}
}

func playerToDTO(v player.Player) playerDTO {
	return playerDTO{
		ID:                v.ID,
		Name:              v.Name,
		PreferredPosition: string(v.PreferredPosition),
		Skill:             v.Skill,
		StaminaLeft:       v.StaminaLeft,
		MatchesPlayed:     v.MatchesPlayed,
		GoalsScored:       v.GoalsScored,
		AssistsMade:       v.AssistsMade,
	}
}

func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateTeam")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req createTeamRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.teamService.Create(ctx, principal.UserID, req.Name)
	if err != nil {
		h.logger.WarnContext(ctx, "create team failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, teamToDTO(item))
}

func (h *Handler) ListMyTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyTeams")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	teams, err := h.teamService.ListByOwner(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "list teams failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		items = append(items, teamToDTO(t))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeam")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	item, err := h.teamService.Get(ctx, principal.UserID, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	skill, err := h.teamService.TeamSkill(ctx, item.ID)
	if err != nil {
		h.logger.WarnContext(ctx, "team skill failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, struct {
		teamDTO
		Skill int `json:"skill"`
	}{teamToDTO(item), skill})
}

func (h *Handler) RenameTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RenameTeam")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req renameTeamRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	item, err := h.teamService.Rename(ctx, principal.UserID, teamID, req.Name)
	if err != nil {
		h.logger.WarnContext(ctx, "rename team failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(item))
}

func (h *Handler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteTeam")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	if err := h.teamService.Delete(ctx, principal.UserID, teamID); err != nil {
		h.logger.WarnContext(ctx, "delete team failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) ListTeamPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamPlayers")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	players, err := h.teamService.ListPlayers(ctx, principal.UserID, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "list team players failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerDTO, 0, len(players))
	for _, p := range players {
		items = append(items, playerToDTO(p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) SellTeamPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SellTeamPlayers")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req sellPlayersRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	out, err := h.teamService.SellPlayers(ctx, principal.UserID, teamID, req.PlayerIDs)
	if err != nil {
		h.logger.WarnContext(ctx, "sell players failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, sellPlayersDTO{
		Team:       teamToDTO(out.Team),
		TotalPrice: out.TotalPrice,
	})
}
