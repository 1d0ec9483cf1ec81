package session

import (
	"net/http"
	"time"
)

// CookieName — имя HTTP-only cookie с токеном
const CookieName = "auth_token"

// NewCookie собирает cookie с токеном, живущую до expiresAt
func NewCookie(token string, expiresAt time.Time, secure bool) http.Cookie {
	maxAge := int(time.Until(expiresAt).Round(time.Second).Seconds())
	if maxAge <= 0 {
		maxAge = -1
	}

	return http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		Expires:  expiresAt.UTC(),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	}
}

// ClearCookie велит браузеру немедленно удалить cookie
func ClearCookie(secure bool) http.Cookie {
	return http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	}
}
