package aggregates

type Company struct {
	Name           string `yaml:"name" json:"name" validate:"required"`
	SendingEmail   string `yaml:"sending_email" json:"sending_email" validate:"required,email"`
	ReceivingEmail string `yaml:"receiving_email" json:"receiving_email" validate:"required,email"`
}
