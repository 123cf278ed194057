package sqlstore

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/alumnet/alumni-network/internal/core/domain"
	"github.com/alumnet/alumni-network/internal/core/ports"
)

// ConnectionRepository implements ports.ConnectionRepository using gorm.
type ConnectionRepository struct {
	db *gorm.DB
}

// NewConnectionRepository creates a new ConnectionRepository.
func NewConnectionRepository(db *gorm.DB) ports.ConnectionRepository {
	return &ConnectionRepository{db: db}
}

// Create inserts the edge, relying on the (from_user_id, to_user_id) unique
// index to reject a second request for the same ordered pair.
func (r *ConnectionRepository) Create(ctx context.Context, c *domain.Connection) error {
	res := conn(ctx, r.db).Omit(clause.Associations).Clauses(clause.OnConflict{DoNothing: true}).Create(c)
	if res.Error != nil {
		return fmt.Errorf("create connection: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrDuplicateRequest
	}
	return nil
}

func (r *ConnectionRepository) FindByID(ctx context.Context, id uint) (*domain.Connection, error) {
	var c domain.Connection
	if err := conn(ctx, r.db).Preload("FromUser").Preload("ToUser").First(&c, id).Error; err != nil {
		return nil, notFound(err, domain.ErrConnectionNotFound, "find connection")
	}
	return &c, nil
}

// Resolve is a compare-and-set on status: only a pending edge addressed to
// toUserID moves.
func (r *ConnectionRepository) Resolve(
	ctx context.Context,
	id, toUserID uint,
	status domain.ConnectionStatus,
) (*domain.Connection, error) {
	res := conn(ctx, r.db).Model(&domain.Connection{}).
		Where("id = ? AND to_user_id = ? AND status = ?", id, toUserID, domain.ConnectionPending).
		Updates(map[string]any{"status": status, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return nil, fmt.Errorf("resolve connection: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrConnectionNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *ConnectionRepository) ListAccepted(ctx context.Context, userID uint) ([]*domain.Connection, error) {
	var out []*domain.Connection
	err := conn(ctx, r.db).Preload("FromUser").Preload("ToUser").
		Where("status = ? AND (from_user_id = ? OR to_user_id = ?)", domain.ConnectionAccepted, userID, userID).
		Order("updated_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list connections: %w", err)
	}
	return out, nil
}

func (r *ConnectionRepository) ListPendingFor(ctx context.Context, userID uint) ([]*domain.Connection, error) {
	var out []*domain.Connection
	err := conn(ctx, r.db).Preload("FromUser").
		Where("status = ? AND to_user_id = ?", domain.ConnectionPending, userID).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list pending connections: %w", err)
	}
	return out, nil
}

func (r *ConnectionRepository) ConnectedUserIDs(ctx context.Context, userID uint) ([]uint, error) {
	edges, err := r.ListAccepted(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(edges))
	for _, e := range edges {
		ids = append(ids, e.Other(userID))
	}
	return ids, nil
}
