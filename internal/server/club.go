package server

import (
	"context"
	"fmt"
	"tenbucks-club/internal/domain"
	"tenbucks-club/internal/service"

	"connectrpc.com/connect"
	"github.com/rs/zerolog"
)

type ClubServer struct {
	roster        *service.RosterService
	waitlist      *service.WaitlistService
	participation *service.ParticipationService
	seasons       *service.SeasonService
	matches       *service.MatchService
	scoring       *service.ScoringService
}

func NewClubServer(
	roster *service.RosterService,
	waitlist *service.WaitlistService,
	participation *service.ParticipationService,
	seasons *service.SeasonService,
	matches *service.MatchService,
	scoring *service.ScoringService,
) *ClubServer {
	return &ClubServer{
		roster:        roster,
		waitlist:      waitlist,
		participation: participation,
		seasons:       seasons,
		matches:       matches,
		scoring:       scoring,
	}
}

// fail logs through the request-scoped logger and maps err to a connect code.
func fail(ctx context.Context, procedure string, err error) error {
	cerr := toConnectError(err)
	event := zerolog.Ctx(ctx).Warn()
	if connect.CodeOf(cerr) == connect.CodeInternal {
		event = zerolog.Ctx(ctx).Error()
	}
	event.Err(err).Str("procedure", procedure).Msg("request failed")
	return cerr
}

func (s *ClubServer) AddPlayer(ctx context.Context, req *connect.Request[AddPlayerRequest]) (*connect.Response[Player], error) {
	status := domain.StatusNotInSession
	if req.Msg.Status != "" {
		var err error
		if status, err = domain.ParsePlayerStatus(req.Msg.Status); err != nil {
			return nil, fail(ctx, "AddPlayer", err)
		}
	}

	player, err := s.roster.AddPlayer(ctx, req.Msg.Name, status)
	if err != nil {
		return nil, fail(ctx, "AddPlayer", err)
	}
	return connect.NewResponse(toPlayer(player)), nil
}

func (s *ClubServer) RenamePlayer(ctx context.Context, req *connect.Request[RenamePlayerRequest]) (*connect.Response[Player], error) {
	player, err := s.roster.RenamePlayer(ctx, req.Msg.PlayerID, req.Msg.Name)
	if err != nil {
		return nil, fail(ctx, "RenamePlayer", err)
	}
	return connect.NewResponse(toPlayer(player)), nil
}

func (s *ClubServer) ChangeStatus(ctx context.Context, req *connect.Request[ChangeStatusRequest]) (*connect.Response[Player], error) {
	status, err := domain.ParsePlayerStatus(req.Msg.Status)
	if err != nil {
		return nil, fail(ctx, "ChangeStatus", err)
	}

	player, err := s.roster.ChangeStatus(ctx, req.Msg.PlayerID, status)
	if err != nil {
		return nil, fail(ctx, "ChangeStatus", err)
	}
	return connect.NewResponse(toPlayer(player)), nil
}

func (s *ClubServer) GetPlayer(ctx context.Context, req *connect.Request[PlayerRequest]) (*connect.Response[Player], error) {
	player, err := s.roster.GetPlayer(ctx, req.Msg.PlayerID)
	if err != nil {
		return nil, fail(ctx, "GetPlayer", err)
	}
	return connect.NewResponse(toPlayer(player)), nil
}

func (s *ClubServer) ListPlayers(ctx context.Context, _ *connect.Request[Empty]) (*connect.Response[PlayerList], error) {
	players, err := s.roster.ListPlayers(ctx)
	if err != nil {
		return nil, fail(ctx, "ListPlayers", err)
	}
	return connect.NewResponse(toPlayerList(players)), nil
}

func (s *ClubServer) ListWaitlist(ctx context.Context, _ *connect.Request[Empty]) (*connect.Response[PlayerList], error) {
	players, err := s.waitlist.List(ctx)
	if err != nil {
		return nil, fail(ctx, "ListWaitlist", err)
	}
	return connect.NewResponse(toPlayerList(players)), nil
}

func (s *ClubServer) RemoveFromWaitlist(ctx context.Context, req *connect.Request[PlayerRequest]) (*connect.Response[Player], error) {
	player, err := s.waitlist.Remove(ctx, req.Msg.PlayerID)
	if err != nil {
		return nil, fail(ctx, "RemoveFromWaitlist", err)
	}
	return connect.NewResponse(toPlayer(player)), nil
}

func (s *ClubServer) MoveToBottom(ctx context.Context, req *connect.Request[PlayerRequest]) (*connect.Response[Player], error) {
	player, err := s.waitlist.MoveToBottom(ctx, req.Msg.PlayerID)
	if err != nil {
		return nil, fail(ctx, "MoveToBottom", err)
	}
	return connect.NewResponse(toPlayer(player)), nil
}

func (s *ClubServer) ListSeasons(ctx context.Context, _ *connect.Request[Empty]) (*connect.Response[SeasonList], error) {
	seasons, err := s.seasons.ListSeasons(ctx)
	if err != nil {
		return nil, fail(ctx, "ListSeasons", err)
	}

	resp := &SeasonList{Seasons: make([]Season, 0, len(seasons))}
	for i := range seasons {
		resp.Seasons = append(resp.Seasons, *toSeason(&seasons[i]))
	}
	return connect.NewResponse(resp), nil
}

func (s *ClubServer) AddSeason(ctx context.Context, _ *connect.Request[Empty]) (*connect.Response[Season], error) {
	season, err := s.seasons.AddSeason(ctx)
	if err != nil {
		return nil, fail(ctx, "AddSeason", err)
	}
	return connect.NewResponse(toSeason(season)), nil
}

func (s *ClubServer) CompleteSeason(ctx context.Context, req *connect.Request[SeasonRequest]) (*connect.Response[Season], error) {
	season, err := s.seasons.CompleteSeason(ctx, req.Msg.SeasonNumber)
	if err != nil {
		return nil, fail(ctx, "CompleteSeason", err)
	}
	return connect.NewResponse(toSeason(season)), nil
}

func (s *ClubServer) AddSession(ctx context.Context, req *connect.Request[SeasonRequest]) (*connect.Response[Session], error) {
	session, err := s.seasons.AddSession(ctx, req.Msg.SeasonNumber)
	if err != nil {
		return nil, fail(ctx, "AddSession", err)
	}
	return connect.NewResponse(toSession(session)), nil
}

func (s *ClubServer) ListSessions(ctx context.Context, req *connect.Request[SeasonRequest]) (*connect.Response[SessionList], error) {
	sessions, err := s.seasons.ListSessions(ctx, req.Msg.SeasonNumber)
	if err != nil {
		return nil, fail(ctx, "ListSessions", err)
	}

	resp := &SessionList{Sessions: make([]Session, 0, len(sessions))}
	for i := range sessions {
		resp.Sessions = append(resp.Sessions, *toSession(&sessions[i]))
	}
	return connect.NewResponse(resp), nil
}

func (s *ClubServer) GetSession(ctx context.Context, req *connect.Request[SessionRequest]) (*connect.Response[Session], error) {
	session, err := s.seasons.GetSession(ctx, req.Msg.SessionID)
	if err != nil {
		return nil, fail(ctx, "GetSession", err)
	}
	return connect.NewResponse(toSession(session)), nil
}

func (s *ClubServer) CurrentSession(ctx context.Context, _ *connect.Request[Empty]) (*connect.Response[CurrentSessionResponse], error) {
	session, err := s.participation.CurrentSession(ctx)
	if err != nil {
		return nil, fail(ctx, "CurrentSession", err)
	}

	resp := &CurrentSessionResponse{}
	if session != nil {
		resp.Session = toSession(session)
	}
	return connect.NewResponse(resp), nil
}

func (s *ClubServer) AddParticipant(ctx context.Context, req *connect.Request[ParticipantRequest]) (*connect.Response[Participant], error) {
	team, err := domain.ParseTeamAssignment(req.Msg.Team)
	if err != nil {
		return nil, fail(ctx, "AddParticipant", err)
	}

	participant, err := s.participation.AddParticipant(ctx, req.Msg.SessionID, req.Msg.PlayerID, team)
	if err != nil {
		return nil, fail(ctx, "AddParticipant", err)
	}
	return connect.NewResponse(toParticipant(participant)), nil
}

func (s *ClubServer) RemoveParticipant(ctx context.Context, req *connect.Request[ParticipantRequest]) (*connect.Response[Empty], error) {
	if err := s.participation.RemoveParticipant(ctx, req.Msg.SessionID, req.Msg.PlayerID); err != nil {
		return nil, fail(ctx, "RemoveParticipant", err)
	}
	return connect.NewResponse(&Empty{}), nil
}

func (s *ClubServer) SetTeam(ctx context.Context, req *connect.Request[ParticipantRequest]) (*connect.Response[Participant], error) {
	team, err := domain.ParseTeamAssignment(req.Msg.Team)
	if err != nil {
		return nil, fail(ctx, "SetTeam", err)
	}

	participant, err := s.participation.SetTeam(ctx, req.Msg.SessionID, req.Msg.PlayerID, team)
	if err != nil {
		return nil, fail(ctx, "SetTeam", err)
	}
	return connect.NewResponse(toParticipant(participant)), nil
}

func (s *ClubServer) ListParticipants(ctx context.Context, req *connect.Request[ListParticipantsRequest]) (*connect.Response[ParticipantList], error) {
	var filter *domain.TeamAssignment
	if req.Msg.Team != nil {
		team, err := domain.ParseTeamAssignment(*req.Msg.Team)
		if err != nil {
			return nil, fail(ctx, "ListParticipants", err)
		}
		filter = &team
	}

	participants, err := s.participation.ListParticipants(ctx, req.Msg.SessionID, filter)
	if err != nil {
		return nil, fail(ctx, "ListParticipants", err)
	}

	resp := &ParticipantList{Participants: make([]Participant, 0, len(participants))}
	for i := range participants {
		resp.Participants = append(resp.Participants, *toParticipant(&participants[i]))
	}
	return connect.NewResponse(resp), nil
}

func (s *ClubServer) ListPlayerSessions(ctx context.Context, req *connect.Request[PlayerRequest]) (*connect.Response[ParticipantList], error) {
	history, err := s.participation.PlayerHistory(ctx, req.Msg.PlayerID)
	if err != nil {
		return nil, fail(ctx, "ListPlayerSessions", err)
	}

	resp := &ParticipantList{Participants: make([]Participant, 0, len(history))}
	for i := range history {
		resp.Participants = append(resp.Participants, *toParticipant(&history[i]))
	}
	return connect.NewResponse(resp), nil
}

func (s *ClubServer) AddMatch(ctx context.Context, req *connect.Request[AddMatchRequest]) (*connect.Response[Match], error) {
	in := service.AddMatchInput{SessionID: req.Msg.SessionID, Wave: req.Msg.Wave}
	if len(req.Msg.PlayerIDs) != len(in.PlayerIDs) {
		err := fmt.Errorf("%w: got %d players", domain.ErrInvalidMatchPlayers, len(req.Msg.PlayerIDs))
		return nil, fail(ctx, "AddMatch", err)
	}
	copy(in.PlayerIDs[:], req.Msg.PlayerIDs)

	match, err := s.matches.AddMatch(ctx, in)
	if err != nil {
		return nil, fail(ctx, "AddMatch", err)
	}
	return connect.NewResponse(toMatch(match)), nil
}

func (s *ClubServer) UpdateScores(ctx context.Context, req *connect.Request[UpdateScoresRequest]) (*connect.Response[Match], error) {
	match, err := s.matches.UpdateScores(ctx, req.Msg.MatchID, domain.MatchScores{
		RedFirst:    req.Msg.RedFirst,
		BlackFirst:  req.Msg.BlackFirst,
		RedSecond:   req.Msg.RedSecond,
		BlackSecond: req.Msg.BlackSecond,
	})
	if err != nil {
		return nil, fail(ctx, "UpdateScores", err)
	}
	return connect.NewResponse(toMatch(match)), nil
}

func (s *ClubServer) SetMatchCompleted(ctx context.Context, req *connect.Request[SetMatchCompletedRequest]) (*connect.Response[Match], error) {
	match, err := s.matches.SetCompleted(ctx, req.Msg.MatchID, req.Msg.Complete)
	if err != nil {
		return nil, fail(ctx, "SetMatchCompleted", err)
	}
	return connect.NewResponse(toMatch(match)), nil
}

func (s *ClubServer) ListWaves(ctx context.Context, req *connect.Request[SessionRequest]) (*connect.Response[WaveList], error) {
	waves, err := s.matches.ListWaves(ctx, req.Msg.SessionID)
	if err != nil {
		return nil, fail(ctx, "ListWaves", err)
	}

	resp := &WaveList{Waves: make([]Wave, 0, len(waves))}
	for _, w := range waves {
		wave := Wave{Number: w.Number, Matches: make([]Match, 0, len(w.Matches))}
		for i := range w.Matches {
			wave.Matches = append(wave.Matches, *toMatch(&w.Matches[i]))
		}
		resp.Waves = append(resp.Waves, wave)
	}
	return connect.NewResponse(resp), nil
}

func (s *ClubServer) GetTeamTotals(ctx context.Context, req *connect.Request[SessionRequest]) (*connect.Response[TeamTotals], error) {
	totals, err := s.scoring.TeamTotals(ctx, req.Msg.SessionID)
	if err != nil {
		return nil, fail(ctx, "GetTeamTotals", err)
	}
	return connect.NewResponse(&TeamTotals{Red: totals.Red, Black: totals.Black}), nil
}

func (s *ClubServer) GetNetScore(ctx context.Context, req *connect.Request[ParticipantRequest]) (*connect.Response[NetScoreResponse], error) {
	score, err := s.scoring.NetScore(ctx, req.Msg.SessionID, req.Msg.PlayerID)
	if err != nil {
		return nil, fail(ctx, "GetNetScore", err)
	}
	return connect.NewResponse(&NetScoreResponse{NetScore: score}), nil
}

func (s *ClubServer) GetSessionResults(ctx context.Context, req *connect.Request[SessionRequest]) (*connect.Response[SessionResults], error) {
	results, err := s.scoring.SessionResults(ctx, req.Msg.SessionID)
	if err != nil {
		return nil, fail(ctx, "GetSessionResults", err)
	}
	return connect.NewResponse(toSessionResults(results)), nil
}

func (s *ClubServer) GetSeasonAggregate(ctx context.Context, req *connect.Request[SeasonRequest]) (*connect.Response[SeasonAggregate], error) {
	rows, err := s.scoring.SeasonAggregate(ctx, req.Msg.SeasonNumber)
	if err != nil {
		return nil, fail(ctx, "GetSeasonAggregate", err)
	}

	resp := &SeasonAggregate{Players: make([]PlayerSeasonAggregate, 0, len(rows))}
	for _, r := range rows {
		resp.Players = append(resp.Players, PlayerSeasonAggregate{
			PlayerID:         r.PlayerID,
			PlayerName:       r.PlayerName,
			SessionsAttended: r.SessionsAttended,
			Matches:          r.Matches,
			TotalNetScore:    r.TotalNetScore,
			AverageNetScore:  r.AverageNetScore,
		})
	}
	return connect.NewResponse(resp), nil
}
