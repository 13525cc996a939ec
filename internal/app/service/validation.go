package service

import (
	"strings"
)

// Validation messages surfaced to the user. The browser test harness matches
// on these strings, so they must stay stable.
const (
	MsgUsernameTooShort  = "Username must be at least 3 characters long"
	MsgFullNameRequired  = "Full name is required"
	MsgEmailInvalid      = "Please enter a valid email address"
	MsgPasswordTooShort  = "Password must be at least 8 characters long"
	MsgPasswordMismatch  = "Passwords do not match"
	MsgUsernameTaken     = "Username already exists"
	MsgEmailTaken        = "Email already registered"
	MsgLoginFieldsEmpty  = "Please enter both username and password"
	MsgInvalidCredential = "Invalid username or password"
	MsgProjectNameEmpty  = "Project name is required"
)

type RegistrationInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
	FullName        string
}

// ValidateRegistration applies every field rule and returns all violations in
// one pass. Uniqueness is checked separately against the store.
func ValidateRegistration(in RegistrationInput) []string {
	var violations []string

	if len(in.Username) < 3 {
		violations = append(violations, MsgUsernameTooShort)
	}
	if len(strings.TrimSpace(in.FullName)) < 2 {
		violations = append(violations, MsgFullNameRequired)
	}
	if in.Email == "" || !strings.Contains(in.Email, "@") {
		violations = append(violations, MsgEmailInvalid)
	}
	if len(in.Password) < 8 {
		violations = append(violations, MsgPasswordTooShort)
	}
	if in.Password != in.ConfirmPassword {
		violations = append(violations, MsgPasswordMismatch)
	}

	return violations
}

// ValidateLogin requires both fields; a single combined message covers either
// one being empty.
func ValidateLogin(username, password string) []string {
	if username == "" || password == "" {
		return []string{MsgLoginFieldsEmpty}
	}
	return nil
}
