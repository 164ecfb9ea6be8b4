package model

import (
	"errors"
	"fmt"

	"github.com/asaskevich/govalidator"
	"github.com/go-playground/validator/v10"
)

var (
	ErrPortOutOfRange   = errors.New("port must be between 1024 and 50000")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
	ErrPasswordTooLong  = errors.New("password must be at most 32 characters")
	ErrNegativeValue    = errors.New("value must not be negative")
	ErrInvalidNode      = errors.New("invalid node")
)

var validate = validator.New()

func (a *Account) Validate() error {
	err := validate.Struct(a)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fe := verrs[0]
	switch fe.Field() {
	case "Port":
		return fmt.Errorf("%w: %d", ErrPortOutOfRange, a.Port)
	case "Password":
		if fe.Tag() == "min" {
			return ErrPasswordTooShort
		}
		return ErrPasswordTooLong
	default:
		return fmt.Errorf("%w: %s", ErrNegativeValue, fe.Field())
	}
}

// Validate also requires Server to be an IP address or a DNS name, since it
// ends up verbatim in client links.
func (n *Node) Validate() error {
	err := validate.Struct(n)
	if err == nil {
		if !govalidator.IsHost(n.Server) {
			return fmt.Errorf("%w: %q is not a host", ErrInvalidNode, n.Server)
		}
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fe := verrs[0]
	return fmt.Errorf("%w: %s failed %s", ErrInvalidNode, fe.Field(), fe.Tag())
}
