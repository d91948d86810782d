package auth

import (
	"github.com/dmitrijs2005/gophblog/internal/common"
	"github.com/dmitrijs2005/gophblog/internal/server/models"
)

// RequireRole admits principal when its role is one of allowed.
// No principal means common.ErrorUnauthorized, a role outside allowed
// (including an empty allow-list) common.ErrorForbidden.
func RequireRole(principal *models.User, allowed ...models.Role) error {
	if principal == nil {
		return common.ErrorUnauthorized
	}
	for _, r := range allowed {
		if principal.Role == r {
			return nil
		}
	}
	return common.ErrorForbidden
}

// CanModify reports whether principal may mutate a resource owned by ownerID.
func CanModify(principal *models.User, ownerID string) bool {
	if principal == nil {
		return false
	}
	return principal.Role == models.RoleAdmin || principal.ID == ownerID
}
