package tracing

type Configuration struct {
	Enabled  bool
	Endpoint string `validate:"required_if=Enabled true"`
	Insecure bool
}
