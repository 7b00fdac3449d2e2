package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role values stored on users.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is a registered account as read for the admin dashboard.
// ItineraryCount is nil when the backend has never computed it.
type User struct {
	ID             uuid.UUID
	Name           string
	Email          string
	ImageURL       string
	Role           string
	ItineraryCount *int
	JoinedAt       time.Time
}
