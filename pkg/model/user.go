package model

import "time"

const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

type User struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty"`
	Email     string    `json:"email" bson:"email" validate:"required,email"`
	Password  string    `json:"-" bson:"password"`
	Role      string    `json:"role" bson:"role" validate:"required,oneof=ADMIN USER"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Identity is the verified caller extracted from the access token. It is
// passed explicitly into every operation that needs to know who is acting.
type Identity struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
