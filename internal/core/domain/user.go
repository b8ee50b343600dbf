package domain

import (
	"errors"
	"time"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrStorageFailure = errors.New("storage operation failed")

// User models a directory entry.
type User struct {
	ID        string    `json:"id" bson:"id"`
	Email     string    `json:"email" bson:"email"`
	Name      string    `json:"name" bson:"name"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// UserFromDocument builds a User from a loosely typed record. Missing or
// mistyped fields keep their zero value. created_at is accepted either as a
// time.Time or as an RFC 3339 string (the form it takes after JSON binding).
func UserFromDocument(doc map[string]any) User {
	var u User
	if v, ok := doc["id"].(string); ok {
		u.ID = v
	}
	if v, ok := doc["email"].(string); ok {
		u.Email = v
	}
	if v, ok := doc["name"].(string); ok {
		u.Name = v
	}
	switch v := doc["created_at"].(type) {
	case time.Time:
		u.CreatedAt = v
	case string:
		if ts, err := time.Parse(time.RFC3339, v); err == nil {
			u.CreatedAt = ts
		}
	}
	return u
}

// Document returns the loosely typed representation of the record, the shape
// the storage gateway trades in.
func (u User) Document() map[string]any {
	return map[string]any{
		"id":         u.ID,
		"email":      u.Email,
		"name":       u.Name,
		"created_at": u.CreatedAt,
	}
}
