package model

import (
	"database/sql"
	"time"
)

// History is one audit trail entry. UserID is null for events that happen
// before authentication, such as failed logins.
type History struct {
	ID        int64          `json:"id"`
	UserID    sql.NullInt64  `json:"user_id,omitempty"`
	Action    string         `json:"action"`
	EntityID  sql.NullInt64  `json:"entity_id,omitempty"`
	Details   sql.NullString `json:"details,omitempty"`
	IPAddress sql.NullString `json:"ip_address,omitempty"`
	UserAgent sql.NullString `json:"user_agent,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// HistoryResponse is the JSON shape returned by the history listing endpoint.
type HistoryResponse struct {
	ID        int64     `json:"id"`
	UserID    *int64    `json:"user_id,omitempty"`
	Action    string    `json:"action"`
	EntityID  *int64    `json:"entity_id,omitempty"`
	Details   string    `json:"details,omitempty"`
	IPAddress string    `json:"ip_address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ToResponse converts a History row to its response shape.
func (h History) ToResponse() HistoryResponse {
	resp := HistoryResponse{
		ID:        h.ID,
		Action:    h.Action,
		CreatedAt: h.CreatedAt,
	}
	if h.UserID.Valid {
		resp.UserID = &h.UserID.Int64
	}
	if h.EntityID.Valid {
		resp.EntityID = &h.EntityID.Int64
	}
	if h.Details.Valid {
		resp.Details = h.Details.String
	}
	if h.IPAddress.Valid {
		resp.IPAddress = h.IPAddress.String
	}
	return resp
}
