package model

import "time"

const (
	WorkspaceKindDesk        = "DESK"
	WorkspaceKindMeetingRoom = "MEETING_ROOM"
)

// Workspace is a bookable physical resource. IDs are small sequential
// integers allocated from the counters collection, matching the public
// API contract where workspaces are addressed by integer id.
type Workspace struct {
	ID        int64     `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name" validate:"required,min=1,max=100"`
	Kind      string    `json:"kind" bson:"kind" validate:"required,oneof=DESK MEETING_ROOM"`
	Capacity  int       `json:"capacity" bson:"capacity" validate:"min=1,max=500"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
