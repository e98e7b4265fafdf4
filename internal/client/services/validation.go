package services

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/dmitrijs2005/jobtracker/internal/common"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const minPasswordLen = 6

// ValidateCredentials checks the login/registration form before it is sent.
// Both problems are reported at once.
func ValidateCredentials(email string, password []byte) error {
	var errs []error
	switch {
	case email == "":
		errs = append(errs, fmt.Errorf("%w: email is required", common.ErrInvalidEmail))
	case !emailRe.MatchString(email):
		errs = append(errs, common.ErrInvalidEmail)
	}
	switch {
	case len(password) == 0:
		errs = append(errs, fmt.Errorf("%w: password is required", common.ErrPasswordTooWeak))
	case len(password) < minPasswordLen:
		errs = append(errs, common.ErrPasswordTooWeak)
	}
	return errors.Join(errs...)
}
