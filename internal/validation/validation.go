// Package validation registers the domain-specific binding rules on gin's
// validator engine.
package validation

import (
	"afiliasi/internal/domain"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register installs the custom rules. Call once at startup, before the router
// binds any request.
func Register() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterValidation("programtype", oneOf(domain.ProgramTypes))
	v.RegisterValidation("payoutmethod", oneOf(domain.PayoutMethods))
	v.RegisterValidation("payoutstatus", oneOf(domain.PayoutStatuses))
	v.RegisterValidation("referralstatus", oneOf(domain.ReferralStatuses))
}

func oneOf(allowed []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		for _, a := range allowed {
			if s == a {
				return true
			}
		}
		return false
	}
}
