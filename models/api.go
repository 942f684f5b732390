package models

// PaginationMeta reprend les métadonnées de pagination du serveur sans les modifier
type PaginationMeta struct {
	CurrentPage int `json:"current_page"`
	From        int `json:"from"`
	LastPage    int `json:"last_page"`
	PerPage     int `json:"per_page"`
	To          int `json:"to"`
	Total       int `json:"total"`
}

// HasNextPage indique s'il reste des pages à charger
func (m PaginationMeta) HasNextPage() bool {
	return m.CurrentPage < m.LastPage
}

// ErrorResponse représente une réponse d'erreur
type ErrorResponse struct {
	Error   string              `json:"error,omitempty"`
	Message string              `json:"message,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// MessageResponse représente une réponse ne contenant qu'un message
type MessageResponse struct {
	Message string `json:"message"`
}

// SuccessResponse représente une réponse de succès générique
type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}
