package model

import "time"

const (
	AuditActionDeleteWorkspace = "DELETE_WORKSPACE"
	AuditActionDeleteBooking   = "DELETE_BOOKING"
	AuditActionDeleteUser      = "DELETE_USER"
)

const (
	AuditEntityWorkspace = "workspace"
	AuditEntityBooking   = "booking"
	AuditEntityUser      = "user"
)

// AuditLog records who deleted what, with a snapshot of the removed data.
type AuditLog struct {
	ID          string         `json:"id,omitempty" bson:"_id,omitempty"`
	Action      string         `json:"action" bson:"action"`
	EntityType  string         `json:"entity_type" bson:"entity_type"`
	EntityID    string         `json:"entity_id" bson:"entity_id"`
	EntityData  map[string]any `json:"entity_data" bson:"entity_data"`
	PerformedBy Identity       `json:"performed_by" bson:"performed_by"`
	Timestamp   time.Time      `json:"timestamp" bson:"timestamp"`
}

// AuditActionFor maps an entity type to its deletion action kind.
func AuditActionFor(entityType string) string {
	switch entityType {
	case AuditEntityWorkspace:
		return AuditActionDeleteWorkspace
	case AuditEntityBooking:
		return AuditActionDeleteBooking
	case AuditEntityUser:
		return AuditActionDeleteUser
	default:
		return ""
	}
}
