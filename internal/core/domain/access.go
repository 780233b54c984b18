package domain

import "errors"

var ErrAuthRequired = errors.New("authentication required")
var ErrForbidden = errors.New("forbidden")

// AccessCheck describes what an operation demands from the caller.
// The zero value means "any authenticated user".
type AccessCheck struct {
	// RequiredRole, when non-empty, restricts the operation to that role.
	RequiredRole Role
	// OwnedResource enables the ownership rule: the caller must own the
	// resource or be an admin. OwnerID is the resource's owner; nil marks
	// a system-owned resource, which only admins may touch.
	OwnedResource bool
	OwnerID       *int64
}

// Authorize is the single access decision for every protected operation.
//
//  1. An anonymous caller is always rejected with ErrAuthRequired.
//  2. A role requirement that the caller does not meet is ErrForbidden.
//  3. On owned resources, admin role and ownership are independent OR'd
//     conditions: an admin passes regardless of the owner, a non-admin
//     passes only when the resource is their own.
//  4. Anything else (creation, reads open to any authenticated user) is
//     allowed.
func Authorize(u *User, chk AccessCheck) error {
	if u == nil {
		return ErrAuthRequired
	}
	if chk.RequiredRole != "" && u.Role != chk.RequiredRole {
		return ErrForbidden
	}
	if chk.OwnedResource && !u.IsAdmin() {
		if chk.OwnerID == nil || *chk.OwnerID != u.ID {
			return ErrForbidden
		}
	}
	return nil
}
