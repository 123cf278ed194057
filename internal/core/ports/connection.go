package ports

import (
	"context"

	"github.com/alumnet/alumni-network/internal/core/domain"
)

// ConnectionRepository defines persistence operations for the social graph.
type ConnectionRepository interface {
	// Create inserts a pending edge; it returns domain.ErrDuplicateRequest when
	// the ordered pair already exists.
	Create(ctx context.Context, c *domain.Connection) error
	FindByID(ctx context.Context, id uint) (*domain.Connection, error)
	// Resolve moves a pending edge addressed to toUserID into status. It
	// returns domain.ErrConnectionNotFound when no such pending edge exists.
	Resolve(ctx context.Context, id, toUserID uint, status domain.ConnectionStatus) (*domain.Connection, error)
	ListAccepted(ctx context.Context, userID uint) ([]*domain.Connection, error)
	ListPendingFor(ctx context.Context, userID uint) ([]*domain.Connection, error)
	// ConnectedUserIDs returns the other endpoint of every accepted edge.
	ConnectedUserIDs(ctx context.Context, userID uint) ([]uint, error)
}

type ConnectionService interface {
	Request(ctx context.Context, actor domain.Actor, toUserID uint) (*domain.Connection, error)
	Respond(ctx context.Context, actor domain.Actor, connectionID uint, action domain.ConnectionAction) (*domain.Connection, error)
	List(ctx context.Context, actor domain.Actor) ([]*domain.Connection, error)
	ListPending(ctx context.Context, actor domain.Actor) ([]*domain.Connection, error)
}
