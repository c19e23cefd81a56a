package setup

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/lb-conn/ekaer/domain/schema"
	"github.com/lb-conn/ekaer/domain/validation"
)

// EnvPrefix prefixes every environment variable read by LoadConfig,
// e.g. EKAER_USERNAME or EKAER_TLS_CLIENT_CERTIFICATE.
const EnvPrefix = "EKAER"

// Config holds everything needed to build a client.
type Config struct {
	// Username is the technical user registered for the API.
	Username string `mapstructure:"username" validate:"required"`
	// Password is hashed at startup and dropped.
	Password string `mapstructure:"password" validate:"required"`
	// VATNumber is the tax number of the submitting company.
	VATNumber string `mapstructure:"vat_number" validate:"required,ekaer_vat"`
	// SecretKey signs every request.
	SecretKey string `mapstructure:"secret_key" validate:"required"`
	// BaseAddress is the service root, schema.TestEndpoint by default.
	BaseAddress string `mapstructure:"base_address" validate:"required,url"`
	// TextEncoding is the code page used for hashing.
	TextEncoding string `mapstructure:"text_encoding"`
	// Timeout bounds a single round trip.
	Timeout time.Duration `mapstructure:"timeout" validate:"gte=0"`

	TLS TLSConfig `mapstructure:"tls"`
	Log LogConfig `mapstructure:"log"`
}

// TLSConfig holds optional transport security settings.
type TLSConfig struct {
	// ClientCertificate is the path of a PKCS#12 bundle.
	ClientCertificate string `mapstructure:"client_certificate"`
	// ClientCertificatePassword unlocks ClientCertificate.
	ClientCertificatePassword string `mapstructure:"client_certificate_password"`
	// TrustedCertificatesDir holds .pem root certificates replacing the system pool.
	TrustedCertificatesDir string `mapstructure:"trusted_certificates_dir"`
}

// LogConfig is only read by NewLogger; empty fields mean info level and
// json output.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"omitempty,oneof=json console"`
}

var configKeys = []string{
	"username",
	"password",
	"vat_number",
	"secret_key",
	"base_address",
	"text_encoding",
	"timeout",
	"tls.client_certificate",
	"tls.client_certificate_password",
	"tls.trusted_certificates_dir",
	"log.level",
	"log.format",
}

// LoadConfig reads ekaer.yaml (from path when given, otherwise from the
// working directory or ./configs) and overlays EKAER_* environment variables.
// A missing config file is not an error.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("ekaer")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("configs")
	}

	v.SetDefault("base_address", schema.TestEndpoint)
	v.SetDefault("text_encoding", "windows-1250")
	v.SetDefault("timeout", 60*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range configKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration before any client is built.
func (c *Config) Validate() error {
	return validation.Struct(validation.New(), c)
}
