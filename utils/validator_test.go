package utils

import (
	"strings"
	"testing"

	"sahne-client/apierror"
	"sahne-client/constants"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"email valide", "user@example.com", false},
		{"email valide avec sous-domaine", "user@mail.example.com.tr", false},
		{"email avec espaces autour", "  user@example.com ", false},
		{"email vide", "", true},
		{"email sans @", "userexample.com", true},
		{"email sans domaine", "user@", true},
		{"email sans extension", "user@example", true},
		{"email avec espace", "us er@example.com", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEmail(%q) error = %v, wantErr %v", tt.email, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"mot de passe valide", "password123", false},
		{"exactement 8 caractères", "12345678", false},
		{"mot de passe vide", "", true},
		{"mot de passe trop court", "1234567", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePassword() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidatePasswordConfirmation(t *testing.T) {
	if err := ValidatePasswordConfirmation("password123", "password123"); err != nil {
		t.Errorf("confirmation identique: erreur = %v", err)
	}
	err := ValidatePasswordConfirmation("password123", "password124")
	ve, ok := err.(ValidationError)
	if !ok || ve.Field != "password_confirmation" || ve.Message != constants.MsgPasswordMismatch {
		t.Errorf("confirmation différente: erreur = %v", err)
	}
}

func TestValidateRequired(t *testing.T) {
	tests := []struct {
		name    string
		field   string
		value   string
		wantErr bool
	}{
		{"champ rempli", "name", "Ayşe", false},
		{"champ vide", "name", "", true},
		{"champ espaces uniquement", "name", "   ", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequired(tt.field, tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRequired() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		name    string
		phone   string
		wantErr bool
	}{
		{"format international", "+905321234567", false},
		{"format national", "05321234567", false},
		{"dix chiffres", "5321234567", false},
		{"avec espaces", "+90 532 123 45 67", false},
		{"vide", "", true},
		{"trop court", "053212345", true},
		{"indicatif français", "+33612345678", true},
		{"lettres", "05321234abc", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePhone(tt.phone)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePhone(%q) error = %v, wantErr %v", tt.phone, err, tt.wantErr)
			}
		})
	}
}

func TestValidateMaxLength(t *testing.T) {
	if err := ValidateMaxLength("comment", strings.Repeat("ş", MaxTextLength), MaxTextLength); err != nil {
		t.Errorf("500 caractères multi-octets doivent passer: %v", err)
	}
	if err := ValidateMaxLength("comment", strings.Repeat("a", MaxTextLength+1), MaxTextLength); err == nil {
		t.Error("501 caractères doivent échouer")
	}
}

func TestValidateRating(t *testing.T) {
	for _, v := range []int{1, 3, 5} {
		if err := ValidateRating("food_quality", v); err != nil {
			t.Errorf("ValidateRating(%d) erreur = %v", v, err)
		}
	}
	for _, v := range []int{0, 6, -1} {
		if err := ValidateRating("food_quality", v); err == nil {
			t.Errorf("ValidateRating(%d) devrait échouer", v)
		}
	}
}

func TestFieldErrors(t *testing.T) {
	fields := FieldErrors{}
	if fields.Err() != nil {
		t.Fatal("Err() doit être nil sans erreur")
	}

	fields.Add(ValidateEmail("nope"))
	fields.Add(ValidatePassword("court"))
	fields.Add(nil)

	err := fields.Err()
	apiErr, ok := apierror.As(err)
	if !ok || apiErr.Kind != apierror.KindClientValidation {
		t.Fatalf("Err() = %v, attendu client_validation", err)
	}
	if apiErr.FieldError("email") != constants.MsgInvalidEmail {
		t.Errorf("email = %q", apiErr.FieldError("email"))
	}
	if apiErr.FieldError("password") != constants.MsgPasswordTooShort {
		t.Errorf("password = %q", apiErr.FieldError("password"))
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("İstanbul", 3); got != "İst" {
		t.Errorf("Truncate() = %q", got)
	}
	if got := Truncate("abc", 10); got != "abc" {
		t.Errorf("Truncate() = %q", got)
	}
}
