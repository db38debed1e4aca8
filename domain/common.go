package domain

import "errors"

const (
	// SessionCookieName is the cookie carrying the signed session token.
	SessionCookieName = "nutrify_session"

	// HistoryLimit caps the number of scans returned per history query.
	HistoryLimit = 20
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrTokenExpired = errors.New("session token expired")
	ErrTokenInvalid = errors.New("session token invalid")
	ErrInvalidBody  = errors.New("invalid request body")
)
