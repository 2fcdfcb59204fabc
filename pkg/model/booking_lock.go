package model

import "time"

// BookingLock is an advisory lock serializing admission attempts for one
// workspace. The _id is derived from the workspace id, so a second insert
// for the same workspace fails with a duplicate key error. ExpiresAt is
// covered by a TTL index as a backstop against locks leaked by a crashed
// process.
type BookingLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
