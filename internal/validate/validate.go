// Package validate checks form input before any backend call is made.
package validate

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const MinPasswordLength = 6

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
)

// Field pairs a label with the submitted value for Required.
type Field struct {
	Name  string
	Value string
}

// Required returns an error naming the first blank field.
func Required(fields ...Field) error {
	for _, f := range fields {
		if strings.TrimSpace(f.Value) == "" {
			return fmt.Errorf("%s is required", f.Name)
		}
	}
	return nil
}

func Email(email string) error {
	if !emailRegex.MatchString(strings.TrimSpace(email)) {
		return errors.New("please enter a valid email address")
	}
	return nil
}

// Phone accepts digits with an optional leading plus; spaces and dashes are ignored.
func Phone(phone string) error {
	cleaned := strings.NewReplacer(" ", "", "-", "").Replace(phone)
	if !phoneRegex.MatchString(cleaned) {
		return errors.New("please enter a valid phone number")
	}
	return nil
}

func Password(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}
	return nil
}

func PasswordsMatch(password, confirm string) error {
	if password != confirm {
		return errors.New("passwords do not match")
	}
	return nil
}

func Rating(rating int) error {
	if rating < 1 || rating > 5 {
		return errors.New("rating must be between 1 and 5")
	}
	return nil
}

func Quantity(quantity int) error {
	if quantity <= 0 {
		return errors.New("quantity must be greater than zero")
	}
	return nil
}

// First returns the first non-nil error.
func First(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
