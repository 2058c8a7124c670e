package handler

import (
	"errors"
	"testing"
)

func TestValidator_CustomTags(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name  string
		req   registerRequest
		field string
	}{
		{"username starts with digit", registerRequest{Username: "1chef"}, "username"},
		{"username with dash", registerRequest{Username: "chef-one"}, "username"},
		{"name with digits", registerRequest{Name: "Chef 1"}, "name"},
		{"name with double space", registerRequest{Name: "Chef  One"}, "name"},
		{"phone not indian", registerRequest{Phone: "5551234567"}, "phone"},
		{"password too long", registerRequest{Password: string(make([]byte, 73))}, "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRegisterRequest()
			switch tt.field {
			case "username":
				req.Username = tt.req.Username
			case "name":
				req.Name = tt.req.Name
			case "phone":
				req.Phone = tt.req.Phone
			case "password":
				req.Password = tt.req.Password
			}

			err := v.Validate(&req)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if _, ok := ve.Fields[tt.field]; !ok || len(ve.Fields) != 1 {
				t.Fatalf("expected only %q to fail, got %v", tt.field, ve.Fields)
			}
		})
	}
}

func TestValidator_AcceptsValidInput(t *testing.T) {
	v := NewValidator()

	for _, phone := range []string{"9876543210", "+91 9876543210", "+91-9876543210", "09876543210", "98765 43210"} {
		req := validRegisterRequest()
		req.Phone = phone
		if err := v.Validate(&req); err != nil {
			t.Fatalf("phone %q rejected: %v", phone, err)
		}
	}

	title := "Soup"
	if err := v.Validate(&updateRecipeRequest{Title: &title}); err != nil {
		t.Fatalf("partial update rejected: %v", err)
	}
	if err := v.Validate(&updateRecipeRequest{}); err != nil {
		t.Fatalf("nil fields must be skipped: %v", err)
	}
}

func validRegisterRequest() registerRequest {
	return registerRequest{
		Username: "chef_1",
		Name:     "Chef One",
		Email:    "chef1@example.com",
		Phone:    "9876543210",
		Password: "Passw0rd!",
	}
}
