package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// Role constants. The three principal kinds share no storage; the role
// tag carried in the session token is the only discriminant.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleCompany Role = "company"
	RoleStudent Role = "student"
)

// ValidRole reports whether s names one of the three principal kinds.
func ValidRole(s string) bool {
	switch Role(s) {
	case RoleAdmin, RoleCompany, RoleStudent:
		return true
	}
	return false
}

// Principal is the authenticated caller as established by the auth
// middleware: a stable id plus the role it was issued for.
type Principal struct {
	ID   primitive.ObjectID
	Role Role
}

// PrincipalInfo is the slice of a principal record common to all three
// kinds, used by /auth/me and the auth middleware.
type PrincipalInfo struct {
	ID    primitive.ObjectID `json:"id"`
	Name  string             `json:"name"`
	Email string             `json:"email"`
	Role  Role               `json:"role"`
}
