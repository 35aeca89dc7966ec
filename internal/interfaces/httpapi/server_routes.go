package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerAuthRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/auth/register", handler.Register)
	mux.HandleFunc("POST /v1/auth/login", handler.Login)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	registerAuthorizedTeamRoutes(mux, handler, verifier)
	registerAuthorizedSheetRoutes(mux, handler, verifier)
	registerAuthorizedMatchRoutes(mux, handler, verifier)
	registerAuthorizedPackRoutes(mux, handler, verifier)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/rebuild-records", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunRebuildRecordsJob)))
}

func registerAuthorizedTeamRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/teams", RequireAuth(verifier, http.HandlerFunc(handler.CreateTeam)))
	mux.Handle("GET /v1/teams", RequireAuth(verifier, http.HandlerFunc(handler.ListMyTeams)))
	mux.Handle("GET /v1/teams/{teamID}", RequireAuth(verifier, http.HandlerFunc(handler.GetTeam)))
	mux.Handle("PATCH /v1/teams/{teamID}", RequireAuth(verifier, http.HandlerFunc(handler.RenameTeam)))
	mux.Handle("DELETE /v1/teams/{teamID}", RequireAuth(verifier, http.HandlerFunc(handler.DeleteTeam)))
	mux.Handle("GET /v1/teams/{teamID}/players", RequireAuth(verifier, http.HandlerFunc(handler.ListTeamPlayers)))
	mux.Handle("POST /v1/teams/{teamID}/players/sell", RequireAuth(verifier, http.HandlerFunc(handler.SellTeamPlayers)))
}

func registerAuthorizedSheetRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/teams/{teamID}/sheets", RequireAuth(verifier, http.HandlerFunc(handler.CreateSheet)))
	mux.Handle("GET /v1/teams/{teamID}/sheets", RequireAuth(verifier, http.HandlerFunc(handler.ListSheets)))
	mux.Handle("GET /v1/sheets/{sheetID}", RequireAuth(verifier, http.HandlerFunc(handler.GetSheet)))
	mux.Handle("PUT /v1/sheets/{sheetID}", RequireAuth(verifier, http.HandlerFunc(handler.UpdateSheet)))
	mux.Handle("DELETE /v1/sheets/{sheetID}", RequireAuth(verifier, http.HandlerFunc(handler.DeleteSheet)))
}

func registerAuthorizedMatchRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/teams/{teamID}/matches", RequireAuth(verifier, http.HandlerFunc(handler.PlayMatch)))
	mux.Handle("GET /v1/teams/{teamID}/matches", RequireAuth(verifier, http.HandlerFunc(handler.ListMatchHistory)))
	mux.Handle("GET /v1/matches/{matchID}", RequireAuth(verifier, http.HandlerFunc(handler.GetMatch)))
}

func registerAuthorizedPackRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/teams/{teamID}/packs/{tier}", RequireAuth(verifier, http.HandlerFunc(handler.OpenPack)))
}
