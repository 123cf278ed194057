package domain

import "time"

// ConnectionStatus represents the lifecycle state of a connection request.
type ConnectionStatus string

const (
	ConnectionPending  ConnectionStatus = "pending"
	ConnectionAccepted ConnectionStatus = "accepted"
	ConnectionRejected ConnectionStatus = "rejected"
	ConnectionBlocked  ConnectionStatus = "blocked"
)

// connectionTransitions holds the only edges out of pending; every other
// state is terminal.
var connectionTransitions = map[ConnectionStatus][]ConnectionStatus{
	ConnectionPending: {ConnectionAccepted, ConnectionRejected},
}

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s ConnectionStatus) CanTransitionTo(next ConnectionStatus) bool {
	for _, allowed := range connectionTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ConnectionAction is the response a recipient gives to a pending request.
type ConnectionAction string

const (
	ActionAccept ConnectionAction = "accept"
	ActionReject ConnectionAction = "reject"
)

// TargetStatus maps an action to the connection status it produces.
func (a ConnectionAction) TargetStatus() (ConnectionStatus, bool) {
	switch a {
	case ActionAccept:
		return ConnectionAccepted, true
	case ActionReject:
		return ConnectionRejected, true
	}
	return "", false
}

// Connection is a directed edge between two users. At most one edge exists
// per ordered (from, to) pair.
type Connection struct {
	ID         uint             `json:"id" gorm:"primaryKey"`
	FromUserID uint             `json:"from_user_id" gorm:"not null;uniqueIndex:idx_connection_pair"`
	ToUserID   uint             `json:"to_user_id" gorm:"not null;uniqueIndex:idx_connection_pair;index"`
	FromUser   *User            `json:"from_user,omitempty" gorm:"foreignKey:FromUserID"`
	ToUser     *User            `json:"to_user,omitempty" gorm:"foreignKey:ToUserID"`
	Status     ConnectionStatus `json:"status" gorm:"size:20;not null;default:pending;index"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

// Other returns the endpoint of the edge that is not userID.
func (c *Connection) Other(userID uint) uint {
	if c.FromUserID == userID {
		return c.ToUserID
	}
	return c.FromUserID
}
