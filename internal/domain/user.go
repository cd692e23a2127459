package domain

import "time" // Timestamps

// Roles stored on the identity record
const (
	RoleUser  = "user"  // Regular authenticated customer or driver
	RoleAdmin = "admin" // Fleet administrator
)

// User Model
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`                       // Primary key
	Name      string    `json:"name"`                                       // Display name
	Email     string    `gorm:"size:191;uniqueIndex;not null" json:"email"` // Unique email, case preserved
	Password  *string   `json:"-"`                                          // Hashed password, nil for social-login accounts
	Role      string    `gorm:"size:16;not null;default:user" json:"role"`  // Role: user or admin
	CreatedAt time.Time `json:"createdAt"`                                  // Timestamp of creation
}

// RoleFor resolves the role of a new identity from the configured admin email.
// The comparison is case-sensitive.
func RoleFor(email, adminEmail string) string {
	if adminEmail != "" && email == adminEmail {
		return RoleAdmin
	}
	return RoleUser
}

// Identity is the caller resolved from a session
type Identity struct {
	UserID uint   `json:"userId"` // User primary key
	Email  string `json:"email"`  // User email
	Role   string `json:"role"`   // Role at login time
}

// IsAdmin reports whether the identity carries the admin role
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
