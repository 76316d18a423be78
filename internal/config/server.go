package config

// ServerConfig holds settings for the local storefront server
type ServerConfig struct {
	Port string
}

// LoadServerConfig loads server configuration from getenv
func LoadServerConfig(getenv func(string) string) ServerConfig {
	port := getenv("PORT")
	if port == "" {
		port = "8080" // Default to port 8080
	}

	return ServerConfig{
		Port: port,
	}
}

// BaseURL returns the URL the storefront is reachable at on this host
func (c ServerConfig) BaseURL() string {
	return "http://localhost:" + c.Port
}
