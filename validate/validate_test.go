package validate_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/adamwoolhether/pterom/validate"
)

type newUser struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=3"`
	Internal string `json:"-" validate:"omitempty,max=2"`
}

type tokens struct {
	App    string `json:"app_token" validate:"required_without=Client"`
	Client string `json:"client_token" validate:"required_without=App"`
}

func TestCheck(t *testing.T) {
	testCases := map[string]struct {
		val    any
		expErr map[string]string
	}{
		"valid": {
			val: newUser{Email: "a@example.com", Username: "alice"},
		},
		"missing": {
			val: newUser{},
			expErr: map[string]string{
				"email":    "This field is required",
				"username": "This field is required",
			},
		},
		"translated": {
			val: newUser{Email: "nope", Username: "al"},
			expErr: map[string]string{
				"email":    "email must be a valid email address",
				"username": "username must be at least 3 characters in length",
			},
		},
		"requiredWithoutOneSet": {
			val: tokens{App: "ptla"},
		},
		"requiredWithoutNoneSet": {
			val: tokens{},
			expErr: map[string]string{
				"app_token":    "This field is required when Client is empty",
				"client_token": "This field is required when App is empty",
			},
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			err := validate.Check(tc.val)

			if tc.expErr == nil {
				if err != nil {
					t.Fatalf("expected no error, got: %v", err)
				}
				return
			}

			var fe validate.FieldErrors
			if !errors.As(err, &fe) {
				t.Fatalf("expected FieldErrors, got %T: %v", err, err)
			}

			if diff := cmp.Diff(tc.expErr, fe.Fields()); diff != "" {
				t.Errorf("field errors mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCheck_NotAStruct(t *testing.T) {
	err := validate.Check("just a string")
	if err == nil {
		t.Fatal("expected error for non-struct value")
	}
	if validate.IsFieldErrors(err) {
		t.Error("a non-struct value must not produce field errors")
	}
}

func TestFieldErrors_Error(t *testing.T) {
	fe := validate.FieldErrors{
		{Field: "email", Err: "This field is required"},
		{Field: "name", Err: "name must be at least 3 characters in length"},
	}

	exp := "email: This field is required; name: name must be at least 3 characters in length"
	if got := fe.Error(); got != exp {
		t.Errorf("exp %q, got %q", exp, got)
	}
}
