package session

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Claims are the fields the client reads from the API token.
// The signature is not verified: the server remains the authority.
type Claims struct {
	UserID    int   `json:"user_id"`
	ExpiresAt int64 `json:"exp"`
}

// Expiry returns the expiry time, or the zero time if the token has none.
func (c Claims) Expiry() time.Time {
	if c.ExpiresAt == 0 {
		return time.Time{}
	}
	return time.Unix(c.ExpiresAt, 0)
}

// Expired reports whether the token is past its expiry at now.
func (c Claims) Expired(now time.Time) bool {
	return c.ExpiresAt != 0 && !now.Before(c.Expiry())
}

// DecodeClaims extracts the payload of a JWT.
func DecodeClaims(token string) (Claims, error) {
	if token == "" {
		return Claims{}, errors.New("empty token")
	}
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return Claims{}, fmt.Errorf("malformed token: expected 3 segments, got %d", len(parts))
	}

	payload, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(parts[1], "="))
	if err != nil {
		return Claims{}, fmt.Errorf("malformed token payload: %w", err)
	}

	var c Claims
	if err := json.Unmarshal(payload, &c); err != nil {
		return Claims{}, fmt.Errorf("malformed token claims: %w", err)
	}
	return c, nil
}
