package utils

// Application constants
const (
	// Application name
	AppName = "CraftConnect"

	// Default port
	DefaultPort = "8080"

	// Default database host
	DefaultDBHost = "localhost"

	// Default database port
	DefaultDBPort = "5432"

	// Default database name
	DefaultDBName = "craftconnect"

	// Default database user
	DefaultDBUser = "postgres"

	// Default SMTP port
	DefaultSMTPPort = 587

	// Currency used for payment intents
	Currency = "INR"

	// Default page size for order listings
	DefaultPageSize = 10

	// Maximum page size for order listings
	MaxPageSize = 50

	// Minimum rating
	MinRating = 1

	// Maximum rating
	MaxRating = 5

	// Maximum review text length
	MaxReviewLength = 2000
)

// Error messages
const (
	ErrInternalServer   = "Server error"
	ErrLoginRequired    = "Please login for access"
	ErrAdminRequired    = "Admin access required"
	ErrInvalidRequest   = "Invalid request"
	ErrNotConfigured    = "Payment not configured"
	ErrInvalidSignature = "Invalid signature"
)
