package session

import "errors"

var (
	ErrRoleAlreadyAssigned = errors.New("session already has a role")
	ErrStopped             = errors.New("session is stopped")
)
