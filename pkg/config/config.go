package config

import (
	"errors"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTP           HTTP
	Logger         Logger
	Postgres       Postgres
	Kafka          Kafka
	FXProvider     FXProvider
	Policy         Policy
	AuthServiceURL string `env:"AUTH_SERVICE_URL"`
}

type HTTP struct {
	Port             int      `env:"HTTP_PORT" envDefault:"8080"`
	WebhookAPIKey    string   `env:"HTTP_WEBHOOK_API_KEY" envDefault:"dev"`
	WebhookKeyCheck  bool     `env:"HTTP_WEBHOOK_API_KEY_ENABLED" envDefault:"false"`
	WebhookIPWL      []string `env:"HTTP_WEBHOOK_IP_WL"`
	WebhookSignCheck bool     `env:"HTTP_WEBHOOK_SIGN_CHECK_ENABLED" envDefault:"false"`
	WebhookPublicKey string   `env:"HTTP_WEBHOOK_PUBLIC_KEY"` // Base64 of PEM encoded key.
}

type Logger struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type Postgres struct {
	DSN     string `env:"POSTGRES_DSN"`
	MaxConn int32  `env:"POSTGRES_MAX_CONNS" envDefault:"10"`
}

type Kafka struct {
	Brokers          []string `env:"KAFKA_BROKERS"`
	SettlementsTopic string   `env:"KAFKA_SETTLEMENTS_TOPIC"`
}

type FXProvider struct {
	BaseURL string `env:"FX_PROVIDER_BASE_URL"`
	APIKey  string `env:"FX_PROVIDER_API_KEY"`
	Enabled bool   `env:"FX_PROVIDER_ENABLED" envDefault:"false"`
}

// Policy configures the pricing constants; the values are decimal strings so
// no precision is lost in transit through the environment.
type Policy struct {
	FlatFee string `env:"POLICY_FLAT_FEE" envDefault:"29.00"`
	TaxRate string `env:"POLICY_TAX_RATE" envDefault:"0.18"`
}

func New(envPath string) (Config, error) {
	err := godotenv.Load(envPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, err
	}

	c, err := env.ParseAsWithOptions[Config](env.Options{
		RequiredIfNoDef: true,
	})
	if err != nil {
		return Config{}, err
	}

	return c, nil
}
