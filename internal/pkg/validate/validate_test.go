package validate

import "testing"

type sampleRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
	PhoneNumber     string `json:"phone_number" validate:"omitempty,startswith=+"`
}

func TestStruct_Valid(t *testing.T) {
	fields := Struct(sampleRequest{
		Email:           "jane@example.com",
		Password:        "password123",
		PasswordConfirm: "password123",
	})
	if fields != nil {
		t.Fatalf("expected valid, got %v", fields)
	}
}

func TestStruct_CollectsFieldMessages(t *testing.T) {
	fields := Struct(sampleRequest{
		Email:           "not-an-email",
		Password:        "short",
		PasswordConfirm: "different",
		PhoneNumber:     "0821",
	})
	if fields == nil {
		t.Fatalf("expected failures")
	}

	if fields["email"] != "must be a valid email address" {
		t.Fatalf("email: got %q", fields["email"])
	}
	if fields["password"] != "must be at least 8 characters" {
		t.Fatalf("password: got %q", fields["password"])
	}
	if fields["password_confirm"] != "must match password" {
		t.Fatalf("password_confirm: got %q", fields["password_confirm"])
	}
	if fields["phone_number"] != "must start with '+'" {
		t.Fatalf("phone_number: got %q", fields["phone_number"])
	}
}

func TestStruct_MissingRequired(t *testing.T) {
	fields := Struct(sampleRequest{})
	if fields["email"] != "this field is required" {
		t.Fatalf("email: got %q", fields["email"])
	}
}
