package auth

import "errors"

var (
	ErrUnknownProvider       = errors.New("unknown identity provider")
	ErrIdentityExchange      = errors.New("identity provider exchange failed")
	ErrInvalidState          = errors.New("invalid OAuth state")
	ErrMissingEmail          = errors.New("identity has no email address")
	ErrUnverifiedEmail       = errors.New("identity email is not verified")
	ErrInvalidAllowList      = errors.New("invalid admin allow list")
	ErrUserNotFound          = errors.New("user not found")
	ErrMissingSession        = errors.New("no session token")
	ErrInvalidSignature      = errors.New("invalid session token")
	ErrExpiredSession        = errors.New("session expired")
	ErrSelfPromotionDisabled = errors.New("disabled outside development environment")
)
