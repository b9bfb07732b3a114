// Package query defines queries, their handlers and the Bus that dispatches them.
//
// Queries are read-only. They follow the same routing rules as commands but are
// logged at debug level since they are frequent and do not change state.
package query

import (
	"time"

	"github.com/google/uuid"
)

// Query is a read intent routed to exactly one handler.
type Query interface {
	QueryID() string
	QueryTime() time.Time
	// QueryType is the discriminant tag handlers are routed by.
	QueryType() string
}

// Meta carries the identity every query needs. Embed it in concrete queries.
type Meta struct {
	ID        string    `json:"query_id"`
	CreatedAt time.Time `json:"created_at"`
}

// NewMeta returns Meta with a fresh uuid and the current time.
func NewMeta() Meta {
	return Meta{ID: uuid.NewString(), CreatedAt: time.Now()}
}

func (m Meta) QueryID() string { return m.ID }

func (m Meta) QueryTime() time.Time { return m.CreatedAt }
