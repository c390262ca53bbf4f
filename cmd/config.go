package cmd

// Config carries everything the service reads from the environment.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// JWTSecret signs access tokens. Mandatory.
	JWTSecret string

	// FCMCredentialsFile points at the Firebase service account JSON. When
	// empty, push notifications are replaced by a logging no-op.
	FCMCredentialsFile string

	// AccountingBaseURL is the base URL of the external accounting service.
	AccountingBaseURL string
}
