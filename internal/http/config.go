package http

// BasicAuth basic auth for the configuration
type BasicAuth struct {
	Username string
	Password string `validate:"required_with=Username"`
}

// Configuration the HTTP server configuration
type Configuration struct {
	Host      string    `validate:"required"`
	Port      uint32    `validate:"required"`
	BasicAuth BasicAuth `yaml:"basic-auth"`
}
