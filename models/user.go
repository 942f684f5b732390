package models

// Role représente le rôle d'un utilisateur sur la plateforme
type Role string

const (
	RoleClient    Role = "client"
	RoleChef      Role = "chef"
	RoleApplicant Role = "applicant"
	RoleAdmin     Role = "admin"
)

// Valid indique si le rôle fait partie du vocabulaire connu
func (r Role) Valid() bool {
	switch r {
	case RoleClient, RoleChef, RoleApplicant, RoleAdmin:
		return true
	}
	return false
}

// User représente un utilisateur tel que renvoyé par l'API
type User struct {
	ID              int64         `json:"id" bson:"_id"`
	Name            string        `json:"name" bson:"name"`
	Email           string        `json:"email" bson:"email"`
	Phone           string        `json:"phone" bson:"phone"`
	Role            Role          `json:"role" bson:"role"`
	EmailVerifiedAt *FlexibleTime `json:"email_verified_at" bson:"email_verified_at"`
	CreatedAt       FlexibleTime  `json:"created_at" bson:"created_at"`
	UpdatedAt       FlexibleTime  `json:"updated_at" bson:"updated_at"`
}

// IsChef indique si l'utilisateur accède à l'espace chef
func (u *User) IsChef() bool {
	return u != nil && u.Role == RoleChef
}

// LoginRequest représente la requête de connexion
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest représente la requête d'inscription
type RegisterRequest struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Phone                string `json:"phone"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
	Role                 Role   `json:"role"`
}

// AuthResponse représente la réponse d'authentification
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// CurrentUserResponse enveloppe GET /auth/user
type CurrentUserResponse struct {
	User User `json:"user"`
}

// ForgotPasswordRequest représente la demande de réinitialisation
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}
