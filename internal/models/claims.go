package models

import "github.com/golang-jwt/jwt/v5"

// SessionClaims are the claims carried by the identity provider's session
// token. The subject is the opaque clerk ID; nothing else in the token is
// interpreted by this service.
type SessionClaims struct {
	jwt.RegisteredClaims
}

// ClerkID returns the opaque user identifier from the token subject.
func (c *SessionClaims) ClerkID() string {
	return c.Subject
}
