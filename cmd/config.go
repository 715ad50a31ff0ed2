package cmd

// Config carries the service configuration, loaded from the environment.
type Config struct {
	HTTPPort string `envconfig:"HTTP_PORT" default:"8080"`

	DBHost     string `envconfig:"DB_HOST" required:"true"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" required:"true"`
	DBPassword string `envconfig:"DB_PASSWORD" required:"true"`
	DBName     string `envconfig:"DB_NAME" required:"true"`
	DBSslMode  string `envconfig:"DB_SSLMODE" default:"disable"`

	JWTSecret string `envconfig:"JWT_SECRET" required:"true"`
	// WebhookSecret guards the platform webhook endpoints when set.
	WebhookSecret string `envconfig:"WEBHOOK_SECRET"`

	// Timezone anchors the daily and weekly stat boundaries.
	Timezone string `envconfig:"TIMEZONE" default:"Europe/Istanbul"`

	// ExpoPushEndpoint overrides the push API address; empty selects the
	// production Expo endpoint.
	ExpoPushEndpoint string `envconfig:"EXPO_PUSH_ENDPOINT"`
}
