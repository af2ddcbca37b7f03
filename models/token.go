package models

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a JWT used for API authentication.
//
// It embeds [jwt.Token] for signing and claim inspection and
// [jwt.RegisteredClaims] for standard claim access. SignedString holds the
// compact serialized form ready to be sent in an Authorization header.
// UserID caches the parsed "sub" claim so handlers do not re-parse it.
type Token struct {
	*jwt.Token `json:"-"`

	jwt.RegisteredClaims

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`

	// UserID is the account identifier extracted from the "sub" claim.
	UserID int64 `json:"-"`
}

// GetUserID parses the token's "sub" claim as a base-10 int64.
func (t *Token) GetUserID() (int64, error) {
	sub, err := t.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("error extracting user id from token: %w", err)
	}

	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error converting token subject to int64: %w", err)
	}

	return userID, nil
}

// String returns the compact JWS serialization of the token.
func (t *Token) String() string {
	return t.SignedString
}
