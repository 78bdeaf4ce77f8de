package services

import (
	"github.com/dmitrijs2005/yogabook/internal/common"
	"github.com/dmitrijs2005/yogabook/internal/server/models"
)

// EnsureSelf checks that the resolved principal acts on its own account.
// A nil principal is an unauthenticated call; any other mismatch is an
// authorization failure. The admin flag grants no override here.
func EnsureSelf(principal *models.Principal, targetUserID int64) error {
	if principal == nil {
		return common.ErrUnauthenticated
	}
	if principal.ID != targetUserID {
		return common.ErrAuthorizationFailed
	}
	return nil
}
