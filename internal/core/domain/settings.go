package domain

// APISettings configures the enrichment API endpoint.
type APISettings struct {
	BaseURL string
}

// OAuthSettings configures the identity provider client.
type OAuthSettings struct {
	ClientID     string
	ClientSecret string
}

// StorageSettings configures where local data lives.
type StorageSettings struct {
	DataDir string
}

// AppSettings holds the full application configuration.
type AppSettings struct {
	API     APISettings
	OAuth   OAuthSettings
	Storage StorageSettings
}

// DefaultAppSettings returns the built-in defaults. Endpoint and client
// identifiers have no defaults; they must come from config or environment.
func DefaultAppSettings() AppSettings {
	return AppSettings{}
}
