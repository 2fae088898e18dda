package server

import (
	"context"
	"errors"
	"tenbucks-club/internal/domain"

	"connectrpc.com/connect"
)

var codeTable = []struct {
	err  error
	code connect.Code
}{
	{domain.ErrDuplicateName, connect.CodeAlreadyExists},
	{domain.ErrDuplicateParticipant, connect.CodeAlreadyExists},

	{domain.ErrPlayerNotFound, connect.CodeNotFound},
	{domain.ErrSeasonNotFound, connect.CodeNotFound},
	{domain.ErrSessionNotFound, connect.CodeNotFound},
	{domain.ErrMatchNotFound, connect.CodeNotFound},
	{domain.ErrParticipantNotFound, connect.CodeNotFound},

	{domain.ErrNoActiveSession, connect.CodeFailedPrecondition},
	{domain.ErrTeamAssigned, connect.CodeFailedPrecondition},
	{domain.ErrSeasonsIncomplete, connect.CodeFailedPrecondition},
	{domain.ErrSeasonCompleted, connect.CodeFailedPrecondition},
	{domain.ErrNotOnWaitlist, connect.CodeFailedPrecondition},

	{domain.ErrEmptyName, connect.CodeInvalidArgument},
	{domain.ErrInvalidStatus, connect.CodeInvalidArgument},
	{domain.ErrInvalidTeam, connect.CodeInvalidArgument},
	{domain.ErrInvalidMatchPlayers, connect.CodeInvalidArgument},
	{domain.ErrInvalidWave, connect.CodeInvalidArgument},
	{domain.ErrInvalidScore, connect.CodeInvalidArgument},

	{domain.ErrPersistenceCommit, connect.CodeInternal},
	{domain.ErrStoreFailure, connect.CodeInternal},
	{context.DeadlineExceeded, connect.CodeDeadlineExceeded},
	{context.Canceled, connect.CodeCanceled},
}

func toConnectError(err error) error {
	for _, e := range codeTable {
		if errors.Is(err, e.err) {
			return connect.NewError(e.code, err)
		}
	}
	return connect.NewError(connect.CodeInternal, err)
}
