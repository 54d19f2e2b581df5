package dto

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

// MessageRequest carries the optional note attached to a connection request or
// project application
type MessageRequest struct {
	Message string `json:"message,omitempty" example:"Hi! I'd love to hear about your work."`
}

// Validate applies the domain rules
func (r *MessageRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Message, validation.Length(0, 300)),
	)
}
