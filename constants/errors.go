package constants

// Messages d'erreur affichés à l'utilisateur
const (
	ErrNoResponse          = "Aucune réponse du serveur. Vérifiez votre connexion."
	ErrUnexpected          = "Une erreur inattendue est survenue"
	ErrSessionExpired      = "Session expirée, veuillez vous reconnecter"
	ErrInvalidData         = "Données invalides"
	ErrNotAuthenticated    = "Non authentifié"
	ErrInvalidToken        = "Token invalide ou expiré"
	ErrMissingToken        = "Token d'authentification manquant"
	ErrServerError         = "Erreur serveur"
	ErrMethodNotAllowed    = "Méthode non autorisée"
	ErrInvalidJSONBody     = "Body JSON invalide"
	ErrChefNotFound        = "Chef introuvable"
	ErrPackageNotFound     = "Formule introuvable"
	ErrPackageInactive     = "Cette formule n'est plus disponible"
	ErrReservationNotFound = "Réservation introuvable"
	ErrReviewNotFound      = "Avis introuvable"
	ErrUserNotFound        = "Utilisateur introuvable"
	ErrInvalidCredentials  = "Email ou mot de passe incorrect"
	ErrEmailTaken          = "Cet email est déjà utilisé"
	ErrChefOnly            = "Action réservée aux chefs"
	ErrClientOnly          = "Action réservée aux clients"
	ErrCannotCancel        = "Seules les réservations en attente ou confirmées peuvent être annulées"
	ErrCannotReview        = "Seules les réservations terminées peuvent être évaluées"
	ErrAlreadyReviewed     = "Cette réservation a déjà été évaluée"
	ErrAlreadyReplied      = "Une réponse a déjà été publiée pour cet avis"
	ErrChefMismatch        = "Le profil reçu ne correspond pas au chef demandé"
	ErrInvalidTransition   = "Transition de statut impossible"
	ErrSlotTaken           = "Ce créneau n'est plus disponible pour ce chef"
)

// Messages de validation côté client
const (
	MsgRequired         = "Ce champ est requis"
	MsgInvalidEmail     = "Format d'email invalide"
	MsgInvalidPhone     = "Format de téléphone invalide"
	MsgPasswordTooShort = "Le mot de passe doit contenir au moins 8 caractères"
	MsgPasswordMismatch = "Les mots de passe ne correspondent pas"
	MsgInvalidRole      = "Rôle invalide"
	MsgSelectTime       = "Veuillez choisir un horaire"
	MsgSelectEventType  = "Veuillez choisir un type d'événement"
	MsgEnterAddress     = "Veuillez saisir votre adresse"
	MsgAcceptTerms      = "Veuillez accepter les conditions générales"
	MsgInvalidRating    = "La note doit être comprise entre 1 et 5"
	MsgCommentRequired  = "Veuillez rédiger un commentaire sur votre expérience"
	MsgTooLong          = "Le texte ne doit pas dépasser 500 caractères"
	MsgFixErrors        = "Veuillez corriger les champs en erreur"
	MsgDateInPast       = "La date doit être dans le futur"
	MsgInvalidDate      = "Format de date invalide"
	MsgTooManyGuests    = "Le nombre d'invités dépasse la capacité de la formule (%d)"
	MsgReasonRequired   = "Veuillez indiquer un motif"
)

// En-têtes HTTP
const (
	HeaderContentType     = "Content-Type"
	HeaderAccept          = "Accept"
	HeaderAuthorization   = "Authorization"
	HeaderRequestID       = "X-Request-ID"
	HeaderApplicationJSON = "application/json"
)
