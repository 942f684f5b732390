package session

// State est l'état de la session locale
type State int

const (
	// StateUnknown : session persistée pas encore relue
	StateUnknown State = iota
	// StateAnonymous : aucun utilisateur
	StateAnonymous
	// StateAuthenticated : utilisateur présent
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}
