package config

import (
	"github.com/kelseyhightower/envconfig"
)

// App holds the process configuration, read from the environment
// (godotenv loads .env in main first).
type App struct {
	Port        string `envconfig:"PORT" default:"3000"`
	Environment string `envconfig:"ENVIRONMENT" default:"development"`

	MongoURI string `envconfig:"MONGODB_URI" required:"true"`
	DBName   string `envconfig:"DB_NAME" default:"GadgetSwapApplicationSystemDB"`

	JWTSecret string `envconfig:"ACCESS_JWT_SECRET" required:"true"`

	ClientURL      string `envconfig:"CLIENT_URL"`
	AllowedOrigins string `envconfig:"ALLOWED_ORIGINS"`
}

func Load() (App, error) {
	var c App
	err := envconfig.Process("", &c)
	return c, err
}

// Production reports whether cross-site cookie attributes should be
// used (Secure, SameSite=None).
func (c App) Production() bool {
	return c.Environment == "production"
}
