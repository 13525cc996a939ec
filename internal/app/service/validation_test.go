package service

import (
	"slices"
	"testing"
)

func TestValidateRegistration(t *testing.T) {
	valid := RegistrationInput{
		Username:        "alice",
		Email:           "alice@x.com",
		Password:        "longenough1",
		ConfirmPassword: "longenough1",
		FullName:        "Alice A",
	}

	tests := []struct {
		name   string
		mutate func(*RegistrationInput)
		want   []string
	}{
		{
			name:   "valid input has no violations",
			mutate: func(in *RegistrationInput) {},
			want:   nil,
		},
		{
			name:   "short username",
			mutate: func(in *RegistrationInput) { in.Username = "al" },
			want:   []string{MsgUsernameTooShort},
		},
		{
			name:   "empty username",
			mutate: func(in *RegistrationInput) { in.Username = "" },
			want:   []string{MsgUsernameTooShort},
		},
		{
			name:   "full name only whitespace",
			mutate: func(in *RegistrationInput) { in.FullName = "   " },
			want:   []string{MsgFullNameRequired},
		},
		{
			name:   "single character full name",
			mutate: func(in *RegistrationInput) { in.FullName = "A" },
			want:   []string{MsgFullNameRequired},
		},
		{
			name:   "email without at sign",
			mutate: func(in *RegistrationInput) { in.Email = "alice.example.com" },
			want:   []string{MsgEmailInvalid},
		},
		{
			name:   "empty email",
			mutate: func(in *RegistrationInput) { in.Email = "" },
			want:   []string{MsgEmailInvalid},
		},
		{
			name: "short password",
			mutate: func(in *RegistrationInput) {
				in.Password = "short"
				in.ConfirmPassword = "short"
			},
			want: []string{MsgPasswordTooShort},
		},
		{
			name:   "password mismatch",
			mutate: func(in *RegistrationInput) { in.ConfirmPassword = "different1" },
			want:   []string{MsgPasswordMismatch},
		},
		{
			name: "all violations reported together",
			mutate: func(in *RegistrationInput) {
				in.Username = "x"
				in.FullName = ""
				in.Email = "nope"
				in.Password = "short"
				in.ConfirmPassword = "other"
			},
			want: []string{
				MsgUsernameTooShort,
				MsgFullNameRequired,
				MsgEmailInvalid,
				MsgPasswordTooShort,
				MsgPasswordMismatch,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			got := ValidateRegistration(in)
			if !slices.Equal(got, tt.want) {
				t.Errorf("ValidateRegistration() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidateLogin(t *testing.T) {
	if got := ValidateLogin("alice", "secret"); got != nil {
		t.Errorf("expected no violations, got %v", got)
	}
	for _, tc := range [][2]string{{"", "secret"}, {"alice", ""}, {"", ""}} {
		got := ValidateLogin(tc[0], tc[1])
		if len(got) != 1 || got[0] != MsgLoginFieldsEmpty {
			t.Errorf("ValidateLogin(%q, %q) = %v, want single combined message", tc[0], tc[1], got)
		}
	}
}
