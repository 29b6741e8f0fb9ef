package datto

// Configuration the Datto API client configuration
type Configuration struct {
	URL          string `validate:"required,url"`
	ClientID     string `yaml:"client-id" validate:"required"`
	ClientSecret string `yaml:"client-secret" validate:"required"`
	Timeout      string
	TokenPath    string `yaml:"token-path"`
}
