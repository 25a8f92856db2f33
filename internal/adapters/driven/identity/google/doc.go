// Package google implements the IdentityProvider driven port against
// Google's OAuth endpoints.
//
// Interactive sign-in runs the authorization code flow with PKCE: a
// loopback HTTP server receives the redirect, the code is exchanged for
// tokens, and the subject profile is fetched from the userinfo endpoint.
// Tokens are persisted through a CredentialStore so a sign-in survives
// process restarts, and access tokens are minted fresh (refreshing when
// expired) on every Token call.
package google
