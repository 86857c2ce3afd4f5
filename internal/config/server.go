package config

// ServerConfig holds settings for the storefront twin server
type ServerConfig struct {
	Port      string
	JWTSecret string
}

// LoadServerConfig loads twin server configuration from the given environment lookup
func LoadServerConfig(getenv func(string) string) ServerConfig {
	port := getenv("TWIN_PORT")
	if port == "" {
		port = "8080" // Default to port 8080
	}

	secret := getenv("TWIN_JWT_SECRET")
	if secret == "" {
		secret = "storefront-twin-secret"
	}

	return ServerConfig{
		Port:      port,
		JWTSecret: secret,
	}
}
