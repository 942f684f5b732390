package mockdata

import (
	"errors"
	"net/http"

	"sahne-client/constants"
	"sahne-client/utils"
)

// Error est une erreur métier du serveur factice, portée jusqu'au handler avec son statut HTTP
type Error struct {
	Status  int
	Message string
	Fields  utils.FieldErrors
}

// Error implémente l'interface error
func (e *Error) Error() string {
	return e.Message
}

// IsNotFound indique si err est un 404 du store
func IsNotFound(err error) bool {
	var storeErr *Error
	return errors.As(err, &storeErr) && storeErr.Status == http.StatusNotFound
}

func notFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Message: message}
}

func conflict(message string) *Error {
	return &Error{Status: http.StatusConflict, Message: message}
}

func forbidden(message string) *Error {
	return &Error{Status: http.StatusForbidden, Message: message}
}

// invalid transforme des erreurs de champ en 422 (nil si aucune)
func invalid(fields utils.FieldErrors) error {
	if fields.Empty() {
		return nil
	}
	return &Error{Status: http.StatusUnprocessableEntity, Message: constants.ErrInvalidData, Fields: fields}
}
