package domain

import "time"

// Credential is a persisted OAuth session for an identity provider,
// letting the signed-in subject survive process restarts. At most one
// credential exists per provider.
type Credential struct {
	// ID is the unique identifier (UUID).
	ID string `json:"id"`
	// Provider is the identity provider key (e.g. "google").
	Provider string `json:"provider"`
	// AccessToken is the bearer token for API access.
	AccessToken string `json:"access_token"`
	// RefreshToken is used to obtain new access tokens.
	RefreshToken string `json:"refresh_token,omitempty"`
	// TokenType is typically "Bearer".
	TokenType string `json:"token_type"`
	// Expiry is when the access token expires.
	Expiry time.Time `json:"expiry,omitempty"`
	// Subject is the identity the credential belongs to.
	Subject Subject `json:"subject"`
	// UpdatedAt is when the credential was last written.
	UpdatedAt time.Time `json:"updated_at"`
}

// IsExpired returns true if the access token has expired.
func (c *Credential) IsExpired() bool {
	if c.Expiry.IsZero() {
		return false
	}
	return time.Now().After(c.Expiry)
}
