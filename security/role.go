package security

import (
	"slices"

	"support-desk-api/entity"
	"support-desk-api/enum"
	"support-desk-api/exception"
)

// RequireRole is the single authorization predicate: the caller must be present
// and hold one of roles.
func RequireRole(caller *entity.User, roles ...enum.UserRole) error {
	if caller == nil || !slices.Contains(roles, caller.Role) {
		return exception.Unauthorized("You are not authorized")
	}
	return nil
}
