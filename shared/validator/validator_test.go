package validator_test

import (
	"strings"
	"testing"

	"lodge/shared/validator"
)

// Test structs for validation
type guestTestStruct struct {
	Name     string `validate:"required" json:"name"`
	Email    string `validate:"required,email" json:"email"`
	Guests   int    `validate:"gte=1,lte=10" json:"guests"`
	Category string `validate:"oneof=single double suite deluxe" json:"category"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name        string
		data        *guestTestStruct
		expectError bool
	}{
		{
			name: "valid struct",
			data: &guestTestStruct{
				Name:     "Jane Doe",
				Email:    "jane@example.com",
				Guests:   2,
				Category: "double",
			},
			expectError: false,
		},
		{
			name: "missing required field",
			data: &guestTestStruct{
				Email:    "jane@example.com",
				Guests:   2,
				Category: "double",
			},
			expectError: true,
		},
		{
			name: "invalid email",
			data: &guestTestStruct{
				Name:     "Jane Doe",
				Email:    "invalid-email",
				Guests:   2,
				Category: "double",
			},
			expectError: true,
		},
		{
			name: "guests out of range",
			data: &guestTestStruct{
				Name:     "Jane Doe",
				Email:    "jane@example.com",
				Guests:   15,
				Category: "double",
			},
			expectError: true,
		},
		{
			name: "invalid category",
			data: &guestTestStruct{
				Name:     "Jane Doe",
				Email:    "jane@example.com",
				Guests:   2,
				Category: "penthouse",
			},
			expectError: true,
		},
		{
			name: "zero guests",
			data: &guestTestStruct{
				Name:     "Jane Doe",
				Email:    "jane@example.com",
				Guests:   0,
				Category: "double",
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(tt.data)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name        string
		field       interface{}
		tag         string
		expectError bool
	}{
		{
			name:        "valid required string",
			field:       "test",
			tag:         "required",
			expectError: false,
		},
		{
			name:        "empty required string",
			field:       "",
			tag:         "required",
			expectError: true,
		},
		{
			name:        "valid email",
			field:       "test@example.com",
			tag:         "email",
			expectError: false,
		},
		{
			name:        "invalid email",
			field:       "invalid-email",
			tag:         "email",
			expectError: true,
		},
		{
			name:        "valid guest count",
			field:       2,
			tag:         "gte=1,lte=10",
			expectError: false,
		},
		{
			name:        "guest count out of range",
			field:       150,
			tag:         "gte=1,lte=10",
			expectError: true,
		},
		{
			name:        "valid booking date",
			field:       "2026-03-15",
			tag:         "bookingdate",
			expectError: false,
		},
		{
			name:        "invalid booking date",
			field:       "15/03/2026",
			tag:         "bookingdate",
			expectError: true,
		},
		{
			name:        "valid oneof",
			field:       "suite",
			tag:         "oneof=single double suite deluxe",
			expectError: false,
		},
		{
			name:        "invalid oneof",
			field:       "penthouse",
			tag:         "oneof=single double suite deluxe",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		jsonBody    string
		expectError bool
	}{
		{
			name:        "valid JSON",
			jsonBody:    `{"name":"Jane Doe","email":"jane@example.com","guests":2,"category":"double"}`,
			expectError: false,
		},
		{
			name:        "invalid JSON",
			jsonBody:    `{"name":"Jane Doe","email":"invalid-email","guests":2,"category":"double"}`,
			expectError: true,
		},
		{
			name:        "malformed JSON",
			jsonBody:    `{"name":"Jane Doe","email":}`,
			expectError: true,
		},
		{
			name:        "empty JSON",
			jsonBody:    `{}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := strings.NewReader(tt.jsonBody)
			var data guestTestStruct
			err := validator.Validate(reader, &data)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

// Test custom validation messages
func TestValidationMessages(t *testing.T) {
	data := &guestTestStruct{}
	err := validator.ValidateStruct(data)

	if err == nil {
		t.Fatal("expected validation error for empty struct")
	}

	errorMsg := err.Error()

	// Check that error message contains field name and is descriptive
	if !strings.Contains(errorMsg, "required") || errorMsg == "" {
		t.Errorf("expected descriptive error message containing 'required', got: %s", errorMsg)
	}
}

// Test validation error handling
func TestValidationErrorHandling(t *testing.T) {
	// Test with multiple validation errors
	data := &guestTestStruct{
		Name:     "",          // required violation
		Email:    "invalid",   // email violation
		Guests:   -1,          // gte violation
		Category: "penthouse", // oneof violation
	}

	err := validator.ValidateStruct(data)
	if err == nil {
		t.Fatal("expected validation error")
	}

	// The error should be descriptive and contain information about the failure
	errorMsg := err.Error()
	if errorMsg == "" {
		t.Error("expected non-empty error message")
	}

	t.Logf("Error message: %s", errorMsg)
}
