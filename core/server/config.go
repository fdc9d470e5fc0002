package server

import "net"

// Config holds configuration for the HTTP server.
type Config struct {
	// Host is the interface the server binds to. Empty binds all interfaces.
	Host string `mapstructure:"host" default:""`
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// Swagger enables the /swagger UI.
	Swagger bool `mapstructure:"swagger" default:"true"`
	// Metrics enables the Prometheus /metrics endpoint.
	Metrics bool `mapstructure:"metrics" default:"true"`
}

// Address returns the listen address in host:port form.
func (c Config) Address() string {
	port := c.Port
	if port == "" {
		port = "8080"
	}
	return net.JoinHostPort(c.Host, port)
}
