package validation

import (
	validatorv10 "github.com/go-playground/validator/v10"
)

// New returns a configured validator with custom struct-level validation registered.
func New() *validatorv10.Validate {
	v := validatorv10.New()

	// registration must confirm the password and carry the mandatory consents
	v.RegisterStructValidation(registerStructValidation, RegisterRequest{})

	return v
}

func registerStructValidation(sl validatorv10.StructLevel) {
	req := sl.Current().Interface().(RegisterRequest)

	if req.Pwd != req.Pwd2 {
		sl.ReportError(req.Pwd2, "pwd2", "Pwd2", "password_confirm", "")
	}
	if !Agreed(req.AgreeTerms) {
		sl.ReportError(req.AgreeTerms, "agree-terms", "AgreeTerms", "consent_required", "")
	}
	if !Agreed(req.AgreePrivacy) {
		sl.ReportError(req.AgreePrivacy, "agree-privacy", "AgreePrivacy", "consent_required", "")
	}
}
