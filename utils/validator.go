package utils

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"sahne-client/apierror"
	"sahne-client/constants"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
var phoneRegex = regexp.MustCompile(`^(\+90|0)?[0-9]{10}$`)

// Limites des champs libres
const (
	MinPasswordLength = 8
	MaxTextLength     = 500
	MinRating         = 1
	MaxRating         = 5
)

// ValidationError représente une erreur de validation
type ValidationError struct {
	Field   string
	Message string
}

// Error implémente l'interface error
func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

// FieldErrors regroupe les messages de validation par champ
type FieldErrors map[string][]string

// Add ajoute l'erreur si err est une ValidationError (les autres erreurs sont ignorées)
func (f FieldErrors) Add(err error) {
	if ve, ok := err.(ValidationError); ok {
		f[ve.Field] = append(f[ve.Field], ve.Message)
	}
}

// Set ajoute un message pour un champ
func (f FieldErrors) Set(field, message string) {
	f[field] = append(f[field], message)
}

// Empty indique l'absence d'erreur
func (f FieldErrors) Empty() bool {
	return len(f) == 0
}

// Err retourne une erreur de validation locale, ou nil si aucun champ n'est en erreur
func (f FieldErrors) Err() error {
	if f.Empty() {
		return nil
	}
	return apierror.ClientValidation(constants.MsgFixErrors, map[string][]string(f))
}

// ValidateEmail valide un email
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ValidationError{Field: "email", Message: constants.MsgRequired}
	}
	if !emailRegex.MatchString(email) {
		return ValidationError{Field: "email", Message: constants.MsgInvalidEmail}
	}
	return nil
}

// ValidatePassword valide un mot de passe
func ValidatePassword(password string) error {
	if password == "" {
		return ValidationError{Field: "password", Message: constants.MsgRequired}
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return ValidationError{Field: "password", Message: constants.MsgPasswordTooShort}
	}
	return nil
}

// ValidatePasswordConfirmation vérifie que la confirmation est identique
func ValidatePasswordConfirmation(password, confirmation string) error {
	if password != confirmation {
		return ValidationError{Field: "password_confirmation", Message: constants.MsgPasswordMismatch}
	}
	return nil
}

// ValidateRequired valide qu'un champ n'est pas vide
func ValidateRequired(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return ValidationError{Field: field, Message: constants.MsgRequired}
	}
	return nil
}

// NormalizePhone retire les espaces d'un numéro
func NormalizePhone(phone string) string {
	return strings.Join(strings.Fields(phone), "")
}

// ValidatePhone valide un numéro de téléphone turc (+90, 0 ou 10 chiffres nus)
func ValidatePhone(phone string) error {
	phone = NormalizePhone(phone)
	if phone == "" {
		return ValidationError{Field: "phone", Message: constants.MsgRequired}
	}
	if !phoneRegex.MatchString(phone) {
		return ValidationError{Field: "phone", Message: constants.MsgInvalidPhone}
	}
	return nil
}

// ValidateMaxLength limite un texte libre à max caractères
func ValidateMaxLength(field, value string, max int) error {
	if utf8.RuneCountInString(value) > max {
		return ValidationError{Field: field, Message: constants.MsgTooLong}
	}
	return nil
}

// ValidateRating vérifie qu'une note est comprise entre 1 et 5
func ValidateRating(field string, value int) error {
	if value < MinRating || value > MaxRating {
		return ValidationError{Field: field, Message: constants.MsgInvalidRating}
	}
	return nil
}

// Truncate coupe value à max caractères
func Truncate(value string, max int) string {
	if utf8.RuneCountInString(value) <= max {
		return value
	}
	return string([]rune(value)[:max])
}
