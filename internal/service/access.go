package service

import (
	"go.uber.org/zap"

	"idorlab/internal/auth"
	apperrors "idorlab/internal/errors"
)

// authorizeOwner applies the ownership policy to one record and logs denials.
func authorizeOwner(logger *zap.Logger, caller auth.Identity, resource string, id, ownerID uint) error {
	if caller.CanAccess(ownerID) {
		return nil
	}
	logger.Warn("access denied",
		zap.Uint("caller_id", caller.UserID),
		zap.String("caller_role", caller.Role.String()),
		zap.String("resource", resource),
		zap.Uint("resource_id", id),
	)
	return apperrors.ErrForbidden
}
