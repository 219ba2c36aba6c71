package models

import "github.com/golang-jwt/jwt/v5"

// Token wraps a JWT with its registered claims.
//
// SignedString holds the compact serialized form (header.payload.signature)
// ready to be sent in an Authorization header. Sender caches the "sub" claim
// of a validated token: the identity of the remote store instance that signed
// a notification.
type Token struct {
	*jwt.Token `json:"-"`

	jwt.RegisteredClaims

	SignedString string `json:"-"`

	Sender string `json:"-"`
}

// String returns the compact JWS serialization of the token.
func (t *Token) String() string {
	return t.SignedString
}
