package middleware

import (
	"fmt"
	"net/http"
	"time"
)

// SetAccessCookie writes the access token cookie for web portals plus
// the security-header block for token-bearing responses. The __Host-
// prefix requires Secure, Path=/ and no Domain attribute.
func SetAccessCookie(w http.ResponseWriter, token string, ttl time.Duration, sameSiteHighSecurity bool) {
	if token == "" {
		return
	}

	sameSite := "Lax"
	if !sameSiteHighSecurity {
		sameSite = "None"
	}

	expires := time.Now().Add(ttl).UTC().Format(http.TimeFormat)
	w.Header().Add("Set-Cookie",
		fmt.Sprintf("%s=%s; Path=/; Max-Age=%d; Expires=%s; SameSite=%s; Secure; HttpOnly; Priority=High",
			AccessTokenCookieName, token, int(ttl.Seconds()), expires, sameSite,
		))

	addSecurityHeaders(w)
}

// ClearAccessCookie deletes the access cookie (web logout).
func ClearAccessCookie(w http.ResponseWriter, sameSiteHighSecurity bool) {
	sameSite := "Lax"
	if !sameSiteHighSecurity {
		sameSite = "None"
	}

	expired := time.Now().Add(-1 * time.Hour).UTC().Format(http.TimeFormat)
	w.Header().Add("Set-Cookie",
		fmt.Sprintf("%s=; Path=/; Expires=%s; Max-Age=0; SameSite=%s; Secure; HttpOnly; Priority=High",
			AccessTokenCookieName, expired, sameSite,
		))

	addSecurityHeaders(w)
}

func addSecurityHeaders(w http.ResponseWriter) {
	w.Header().Set("Strict-Transport-Security", "max-age=63072000; includeSubDomains; preload")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")

	w.Header().Set("Content-Security-Policy", "default-src 'self'; object-src 'none'; base-uri 'none'; frame-ancestors 'none'")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("X-Frame-Options", "DENY")

	w.Header().Set("Cross-Origin-Opener-Policy", "same-origin")
	w.Header().Set("Cross-Origin-Embedder-Policy", "require-corp")
	w.Header().Set("Cross-Origin-Resource-Policy", "same-site")

	w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
	w.Header().Set("Permissions-Policy", "geolocation=(), camera=(), microphone=(), interest-cohort=()")
}
