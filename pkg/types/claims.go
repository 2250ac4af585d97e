package types

import "github.com/golang-jwt/jwt/v5"

// Claims identifies the caller. UserID doubles as the respondent id when a
// submission does not name one.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
