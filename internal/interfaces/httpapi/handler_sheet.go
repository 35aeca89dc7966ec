package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/futsalverse/futsal-manager/internal/domain/sheet"
)

type sheetSlotsPayload struct {
	RightAttacker string `json:"rightAttacker"`
	LeftAttacker  string `json:"leftAttacker"`
	RightDefender string `json:"rightDefender"`
	LeftDefender  string `json:"leftDefender"`
	Goalkeeper    string `json:"goalkeeper"`
}

type sheetUpsertRequest struct {
	Name  string            `json:"name" validate:"required,max=64"`
	Slots sheetSlotsPayload `json:"slots"`
}

type sheetDTO struct {
	ID         string            `json:"id"`
	TeamID     string            `json:"teamId"`
	Name       string            `json:"name"`
	Slots      sheetSlotsPayload `json:"slots"`
	MatchReady bool              `json:"matchReady"`
	UpdatedAt  string            `json:"updatedAt"`
}

func (p sheetSlotsPayload) toSlots() sheet.PlayerSlots {
	return sheet.PlayerSlots{
		RightAttacker: strings.TrimSpace(p.RightAttacker),
		LeftAttacker:  strings.TrimSpace(p.LeftAttacker),
		RightDefender: strings.TrimSpace(p.RightDefender),
		LeftDefender:  strings.TrimSpace(p.LeftDefender),
		Goalkeeper:    strings.TrimSpace(p.Goalkeeper),
	}
}

func sheetToDTO(v sheet.Sheet) sheetDTO {
	return sheetDTO{
		ID:     v.ID,
		TeamID: v.TeamID,
		Name:   v.Name,
		Slots: sheetSlotsPayload{
			RightAttacker: v.Slots.RightAttacker,
			LeftAttacker:  v.Slots.LeftAttacker,
			RightDefender: v.Slots.RightDefender,
			LeftDefender:  v.Slots.LeftDefender,
			Goalkeeper:    v.Slots.Goalkeeper,
		},
		MatchReady: v.Slots.Filled(),
		UpdatedAt:  v.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func (h *Handler) CreateSheet(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateSheet")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req sheetUpsertRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	item, err := h.sheetService.Create(ctx, principal.UserID, teamID, req.Name, req.Slots.toSlots())
	if err != nil {
		h.logger.WarnContext(ctx, "create sheet failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, sheetToDTO(item))
}

func (h *Handler) ListSheets(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSheets")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	sheets, err := h.sheetService.ListByTeam(ctx, principal.UserID, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "list sheets failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]sheetDTO, 0, len(sheets))
	for _, s := range sheets {
		items = append(items, sheetToDTO(s))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetSheet(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSheet")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	sheetID := strings.TrimSpace(r.PathValue("sheetID"))
	item, err := h.sheetService.Get(ctx, principal.UserID, sheetID)
	if err != nil {
		h.logger.WarnContext(ctx, "get sheet failed", "sheet_id", sheetID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, sheetToDTO(item))
}

func (h *Handler) UpdateSheet(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateSheet")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req sheetUpsertRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	sheetID := strings.TrimSpace(r.PathValue("sheetID"))
	item, err := h.sheetService.Update(ctx, principal.UserID, sheetID, req.Name, req.Slots.toSlots())
	if err != nil {
		h.logger.WarnContext(ctx, "update sheet failed", "sheet_id", sheetID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, sheetToDTO(item))
}

func (h *Handler) DeleteSheet(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteSheet")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	sheetID := strings.TrimSpace(r.PathValue("sheetID"))
	if err := h.sheetService.Delete(ctx, principal.UserID, sheetID); err != nil {
		h.logger.WarnContext(ctx, "delete sheet failed", "sheet_id", sheetID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "deleted"})
}
