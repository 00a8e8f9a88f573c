package jwt

import "errors"

var (
	ErrMissingSigningKey  = errors.New("jwt: missing signing key")
	ErrSigningKeyTooShort = errors.New("jwt: signing key too short")
	ErrMissingClaims      = errors.New("jwt: missing claims")
	ErrInvalidToken       = errors.New("jwt: invalid token")
	ErrInvalidSignature   = errors.New("jwt: invalid signature")
	ErrExpiredToken       = errors.New("jwt: token expired")
)
