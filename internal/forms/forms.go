// Package forms holds the validation rules of the site's forms. Validation is
// a pure function of the submitted values and runs when a form is posted.
package forms

import (
	"html"
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

// FieldErrors maps a form field name to its first failing rule message.
type FieldErrors map[string]string

func (e FieldErrors) Empty() bool { return len(e) == 0 }

func (e FieldErrors) Get(field string) string { return e[field] }

var (
	looseEmail = regexp.MustCompile(`\S+@\S+\.\S+`)
	sixDigits  = regexp.MustCompile(`^[0-9]{6}$`)
	strict     = bluemonday.StrictPolicy()
)

// Clean strips markup from free text and trims surrounding space.
func Clean(s string) string {
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}

type Login struct {
	Email    string
	Password string
}

func (f Login) Validate() FieldErrors {
	errs := FieldErrors{}
	checkEmail(errs, f.Email)
	switch {
	case f.Password == "":
		errs["password"] = "Password is required"
	case length(f.Password) < 6:
		errs["password"] = "Password must be at least 6 characters"
	}
	return errs
}

type Signup struct {
	FullName        string
	Email           string
	Password        string
	ConfirmPassword string
}

func (f Signup) Validate() FieldErrors {
	errs := FieldErrors{}
	if f.FullName == "" {
		errs["fullName"] = "Full name is required"
	}
	checkEmail(errs, f.Email)
	checkNewPassword(errs, f.Password, f.ConfirmPassword)
	return errs
}

type ForgotPassword struct {
	Email string
}

func (f ForgotPassword) Validate() FieldErrors {
	errs := FieldErrors{}
	checkEmail(errs, f.Email)
	return errs
}

type ResetPassword struct {
	Password        string
	ConfirmPassword string
}

func (f ResetPassword) Validate() FieldErrors {
	errs := FieldErrors{}
	checkNewPassword(errs, f.Password, f.ConfirmPassword)
	return errs
}

type VerifyEmail struct {
	Code string
}

func (f VerifyEmail) Validate() FieldErrors {
	errs := FieldErrors{}
	if !sixDigits.MatchString(f.Code) {
		errs["code"] = "Please enter the 6-digit code"
	}
	return errs
}

type Contact struct {
	FullName string
	Email    string
	Subject  string
	Message  string
}

func (f Contact) Validate() FieldErrors {
	errs := FieldErrors{}
	if length(f.FullName) < 2 {
		errs["fullName"] = "Full Name is required"
	}
	if !strictEmail(f.Email) {
		errs["email"] = "Invalid email address"
	}
	if length(f.Subject) < 1 {
		errs["subject"] = "Subject is required"
	}
	if length(f.Message) < 10 {
		errs["message"] = "Message must be at least 10 characters"
	}
	return errs
}

func checkEmail(errs FieldErrors, email string) {
	switch {
	case email == "":
		errs["email"] = "Email address is required"
	case !looseEmail.MatchString(email):
		errs["email"] = "Please enter a valid email address"
	}
}

func checkNewPassword(errs FieldErrors, password, confirm string) {
	switch {
	case password == "":
		errs["password"] = "Password is required"
	case length(password) < 8:
		errs["password"] = "Password must be at least 8 characters"
	}
	if password != confirm {
		errs["confirmPassword"] = "Passwords do not match"
	}
}

func strictEmail(v string) bool {
	addr, err := mail.ParseAddress(v)
	if err != nil {
		return false
	}
	return addr.Address == v && strings.Contains(v[strings.LastIndex(v, "@"):], ".")
}

func length(s string) int {
	return utf8.RuneCountInString(s)
}
