package model

import "time"

// Booking reserves one workspace for a contiguous half-open interval
// [StartAt, EndAt). Bookings are created only through the admission path
// and are never updated in place.
type Booking struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty"`
	UserID      string    `json:"user_id" bson:"user_id"`
	WorkspaceID int64     `json:"workspace_id" bson:"workspace_id" validate:"required,min=1"`
	StartAt     time.Time `json:"start_at" bson:"start_at" validate:"required"`
	EndAt       time.Time `json:"end_at" bson:"end_at" validate:"required,gtfield=StartAt"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// BookingDetail is a booking joined with its workspace and, for admin
// listings, minimal information about the owning user.
type BookingDetail struct {
	Booking   `bson:",inline"`
	Workspace *Workspace   `json:"workspace,omitempty" bson:"workspace,omitempty"`
	User      *BookingUser `json:"user,omitempty" bson:"user,omitempty"`
}

// BookingUser is the projection of a user exposed on admin booking
// listings. No password, no internal fields.
type BookingUser struct {
	ID    string `json:"id" bson:"_id"`
	Email string `json:"email" bson:"email"`
	Role  string `json:"role" bson:"role"`
}
