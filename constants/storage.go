package constants

// Clés du stockage local de session
const (
	StorageKeyAuthToken           = "@sahne:auth_token"
	StorageKeyUserData            = "@sahne:user_data"
	StorageKeyOnboardingCompleted = "@sahne:onboarding_completed"
	StorageKeyThemeMode           = "@sahne:theme_mode"
)

// AppName et AppVersion identifient le client auprès de l'API
const (
	AppName    = "SAHNE"
	AppVersion = "1.0.0"
)
