// Package apierror définit la forme d'erreur unique remontée aux écrans du client.
package apierror

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Kind classe une erreur selon sa provenance
type Kind string

const (
	// KindNetwork : aucune réponse reçue du serveur
	KindNetwork Kind = "network"
	// KindValidation : erreurs de validation structurées renvoyées par le serveur
	KindValidation Kind = "validation"
	// KindBusiness : erreur métier avec un message unique (conflit de réservation, etc.)
	KindBusiness Kind = "business"
	// KindUnauthorized : 401, la session locale a été effacée
	KindUnauthorized Kind = "unauthorized"
	// KindClientValidation : rejetée avant tout appel réseau
	KindClientValidation Kind = "client_validation"
)

// Error est l'erreur normalisée {message, status?, errors?}
type Error struct {
	Kind    Kind                `json:"kind"`
	Message string              `json:"message"`
	Status  int                 `json:"status,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
	Err     error               `json:"-"`
}

// Error implémente l'interface error
func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s (%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap expose l'erreur de transport d'origine
func (e *Error) Unwrap() error {
	return e.Err
}

// FieldError retourne le premier message associé à un champ
func (e *Error) FieldError(field string) string {
	if msgs := e.Errors[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// Fields retourne les champs en erreur triés
func (e *Error) Fields() []string {
	fields := make([]string, 0, len(e.Errors))
	for f := range e.Errors {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// Summary concatène le message et les erreurs de champ pour un affichage bloquant
func (e *Error) Summary() string {
	if len(e.Errors) == 0 {
		return e.Message
	}
	var b strings.Builder
	b.WriteString(e.Message)
	for _, f := range e.Fields() {
		b.WriteString("\n  - ")
		b.WriteString(f)
		b.WriteString(": ")
		b.WriteString(strings.Join(e.Errors[f], ", "))
	}
	return b.String()
}

// Network construit une erreur réseau
func Network(message string, err error) *Error {
	return &Error{Kind: KindNetwork, Message: message, Err: err}
}

// ClientValidation construit une erreur de validation locale
func ClientValidation(message string, fields map[string][]string) *Error {
	return &Error{Kind: KindClientValidation, Message: message, Errors: fields}
}

// Business construit une erreur métier sans détail de champ
func Business(status int, message string) *Error {
	return &Error{Kind: KindBusiness, Status: status, Message: message}
}

// As extrait une *Error d'une chaîne d'erreurs
func As(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsKind indique si err porte le type donné
func IsKind(err error, kind Kind) bool {
	apiErr, ok := As(err)
	return ok && apiErr.Kind == kind
}

// Message retourne le message affichable d'une erreur quelconque
func Message(err error, fallback string) string {
	if apiErr, ok := As(err); ok && apiErr.Message != "" {
		return apiErr.Message
	}
	if err != nil && fallback == "" {
		return err.Error()
	}
	return fallback
}
