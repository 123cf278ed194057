package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/alumnet/alumni-network/internal/core/domain"
	"github.com/alumnet/alumni-network/internal/core/ports"
)

type connectionService struct {
	connections ports.ConnectionRepository
	users       ports.UserRepository
	tx          ports.Transactor
	notifier    ports.Notifier
	activity    ports.ActivityRecorder
	log         zerolog.Logger
}

// NewConnectionService returns a ConnectionService implementation.
func NewConnectionService(
	connections ports.ConnectionRepository,
	users ports.UserRepository,
	tx ports.Transactor,
	notifier ports.Notifier,
	activity ports.ActivityRecorder,
	log zerolog.Logger,
) ports.ConnectionService {
	return &connectionService{
		connections: connections,
		users:       users,
		tx:          tx,
		notifier:    notifier,
		activity:    activity,
		log:         log,
	}
}

// Request creates a pending edge from the actor to toUserID and notifies the
// recipient in the same transaction.
func (s *connectionService) Request(ctx context.Context, actor domain.Actor, toUserID uint) (*domain.Connection, error) {
	if actor.UserID == toUserID {
		return nil, domain.ErrSelfConnection
	}

	c := &domain.Connection{
		FromUserID: actor.UserID,
		ToUserID:   toUserID,
		Status:     domain.ConnectionPending,
	}
	err := inTx(ctx, s.tx, func(ctx context.Context) error {
		if _, err := s.users.FindByID(ctx, toUserID); err != nil {
			return err
		}
		if err := s.connections.Create(ctx, c); err != nil {
			return err
		}
		_, err := s.notifier.Notify(ctx, domain.NotificationInput{
			UserID:   toUserID,
			Type:     domain.NotifyConnectionRequest,
			Title:    "New connection request",
			Message:  fmt.Sprintf("%s wants to connect with you", actor.Username),
			Priority: domain.PriorityMedium,
			Related:  domain.Ref(domain.RelatedConnection, c.ID),
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	record(ctx, s.activity, actor.UserID, domain.ActivityConnectionRequested, "sent a connection request",
		map[string]any{"to_user_id": toUserID})
	s.log.Info().Uint("from_user_id", actor.UserID).Uint("to_user_id", toUserID).Msg("connection requested")
	return c, nil
}

// Respond resolves a pending request addressed to the actor.
func (s *connectionService) Respond(
	ctx context.Context,
	actor domain.Actor,
	connectionID uint,
	action domain.ConnectionAction,
) (*domain.Connection, error) {
	target, ok := action.TargetStatus()
	if !ok {
		return nil, domain.NewFieldError("action", "action must be accept or reject")
	}
	if !domain.ConnectionPending.CanTransitionTo(target) {
		return nil, domain.ErrInvalidTransition
	}

	var resolved *domain.Connection
	err := inTx(ctx, s.tx, func(ctx context.Context) error {
		c, err := s.connections.Resolve(ctx, connectionID, actor.UserID, target)
		if err != nil {
			return err
		}
		resolved = c
		if target != domain.ConnectionAccepted {
			return nil
		}
		_, err = s.notifier.Notify(ctx, domain.NotificationInput{
			UserID:   c.FromUserID,
			Type:     domain.NotifyConnectionAccepted,
			Title:    "Connection accepted",
			Message:  fmt.Sprintf("%s accepted your connection request", actor.Username),
			Priority: domain.PriorityMedium,
			Related:  domain.Ref(domain.RelatedConnection, c.ID),
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	if target == domain.ConnectionAccepted {
		record(ctx, s.activity, actor.UserID, domain.ActivityConnectionAccepted, "accepted a connection request",
			map[string]any{"connection_id": connectionID})
	}
	s.log.Info().Uint("connection_id", connectionID).Str("status", string(target)).Msg("connection resolved")
	return resolved, nil
}

func (s *connectionService) List(ctx context.Context, actor domain.Actor) ([]*domain.Connection, error) {
	return s.connections.ListAccepted(ctx, actor.UserID)
}

func (s *connectionService) ListPending(ctx context.Context, actor domain.Actor) ([]*domain.Connection, error) {
	return s.connections.ListPendingFor(ctx, actor.UserID)
}
