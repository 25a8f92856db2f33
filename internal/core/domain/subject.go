package domain

import "strings"

// Subject is the authenticated identity of the current user.
// It is owned by the identity provider and read-only to the core:
// created on successful sign-in, cleared on sign-out.
type Subject struct {
	// ID is the provider's stable identifier for the user.
	ID string `json:"id"`

	// DisplayName is the user's display name.
	DisplayName string `json:"display_name"`

	// AvatarURL is a reference to the user's display image.
	AvatarURL string `json:"avatar_url,omitempty"`

	// Email is the user's email address. It doubles as the stable
	// per-user partition key for the record store.
	Email string `json:"email"`
}

// Namespace derives the subject's record store partition key from its
// email address. '@' and '.' are replaced with '_' so the namespace is
// safe to use as a collection name; since email addresses are already
// unique identities, the substitution keeps subjects from colliding.
func (s Subject) Namespace() string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '@', '.':
			return '_'
		}
		return r
	}, s.Email)
}

// Valid reports whether the subject carries the minimum identity
// attributes the workflow depends on.
func (s Subject) Valid() bool {
	return s.ID != "" && s.Email != ""
}
