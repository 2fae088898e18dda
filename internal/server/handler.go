package server

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

// ClubServicePath prefixes every procedure served by NewClubServiceHandler.
const ClubServicePath = "/club.v1.ClubService/"

// NewClubServiceHandler mounts every ClubServer procedure under
// ClubServicePath and returns the prefix with its handler.
func NewClubServiceHandler(s *ClubServer, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)
	mux := http.NewServeMux()

	unary(mux, "AddPlayer", s.AddPlayer, opts)
	unary(mux, "RenamePlayer", s.RenamePlayer, opts)
	unary(mux, "ChangeStatus", s.ChangeStatus, opts)
	unary(mux, "GetPlayer", s.GetPlayer, opts)
	unary(mux, "ListPlayers", s.ListPlayers, opts)

	unary(mux, "ListWaitlist", s.ListWaitlist, opts)
	unary(mux, "RemoveFromWaitlist", s.RemoveFromWaitlist, opts)
	unary(mux, "MoveToBottom", s.MoveToBottom, opts)

	unary(mux, "ListSeasons", s.ListSeasons, opts)
	unary(mux, "AddSeason", s.AddSeason, opts)
	unary(mux, "CompleteSeason", s.CompleteSeason, opts)
	unary(mux, "AddSession", s.AddSession, opts)
	unary(mux, "ListSessions", s.ListSessions, opts)
	unary(mux, "GetSession", s.GetSession, opts)
	unary(mux, "CurrentSession", s.CurrentSession, opts)

	unary(mux, "AddParticipant", s.AddParticipant, opts)
	unary(mux, "RemoveParticipant", s.RemoveParticipant, opts)
	unary(mux, "SetTeam", s.SetTeam, opts)
	unary(mux, "ListParticipants", s.ListParticipants, opts)
	unary(mux, "ListPlayerSessions", s.ListPlayerSessions, opts)

	unary(mux, "AddMatch", s.AddMatch, opts)
	unary(mux, "UpdateScores", s.UpdateScores, opts)
	unary(mux, "SetMatchCompleted", s.SetMatchCompleted, opts)
	unary(mux, "ListWaves", s.ListWaves, opts)

	unary(mux, "GetTeamTotals", s.GetTeamTotals, opts)
	unary(mux, "GetNetScore", s.GetNetScore, opts)
	unary(mux, "GetSessionResults", s.GetSessionResults, opts)
	unary(mux, "GetSeasonAggregate", s.GetSeasonAggregate, opts)

	return ClubServicePath, mux
}

func unary[Req, Res any](
	mux *http.ServeMux,
	method string,
	fn func(context.Context, *connect.Request[Req]) (*connect.Response[Res], error),
	opts []connect.HandlerOption,
) {
	procedure := ClubServicePath + method
	mux.Handle(procedure, connect.NewUnaryHandler(procedure, fn, opts...))
}

// NewClient returns a connect client for one procedure, speaking the same
// JSON codec as the handler.
func NewClient[Req, Res any](httpClient connect.HTTPClient, baseURL, method string, opts ...connect.ClientOption) *connect.Client[Req, Res] {
	opts = append([]connect.ClientOption{connect.WithCodec(jsonCodec{})}, opts...)
	return connect.NewClient[Req, Res](httpClient, baseURL+ClubServicePath+method, opts...)
}
