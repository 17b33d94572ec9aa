package config

import (
	"errors"
	"fmt"
	"reflect"
	"time"
	_ "time/tzdata"

	"github.com/spf13/viper"
)

// AppConfig holds the configuration for the application.
// Tags used:
// - mapstructure: used by viper to unmarshal
// - default: default value to set if missing
// - required: if "true", error if missing
type AppConfig struct {
	// Environment specifies the runtime environment (e.g., development, production).
	Environment string `mapstructure:"APP_ENV" default:"development"`
	// LogLevel defines the logging verbosity (e.g., debug, info, error).
	LogLevel string `mapstructure:"LOG_LEVEL" default:"info"`
	// ServerPort is the port where the server will listen.
	ServerPort int `mapstructure:"SERVER_PORT" default:"8080"`
	// Timezone is the IANA zone used for the dates printed on labels.
	Timezone string `mapstructure:"TIMEZONE" default:"Asia/Bangkok"`

	// OrderAPI holds the order backend configuration.
	OrderAPI OrderAPIConfig `mapstructure:",squash"`

	// Redis holds the cache and job store configuration.
	Redis RedisConfig `mapstructure:",squash"`

	// Labels holds label pipeline defaults.
	Labels LabelsConfig `mapstructure:",squash"`

	// Printer holds the document presentation settings.
	Printer PrinterConfig `mapstructure:",squash"`

	// Sender is the return address printed on every label.
	Sender SenderConfig `mapstructure:",squash"`

	// Proxy holds the upstream proxy used for outbound traffic.
	Proxy ProxyConfig `mapstructure:",squash"`
}

// OrderAPIConfig holds the connection details of the order backend.
type OrderAPIConfig struct {
	// URL is the base URL of the order backend (without the /api suffix).
	URL string `mapstructure:"ORDER_API_URL" required:"true"`
	// Token is the fallback bearer token used when the caller does not forward one.
	Token string `mapstructure:"ORDER_API_TOKEN"`
	// TimeoutSeconds bounds a single upstream request.
	TimeoutSeconds int `mapstructure:"ORDER_API_TIMEOUT_SECONDS" default:"10"`
	// RequestsPerSecond limits upstream calls. 0 disables the limiter.
	RequestsPerSecond float64 `mapstructure:"UPSTREAM_RPS" default:"0"`
}

// Timeout returns the upstream request timeout.
func (c OrderAPIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// RedisConfig holds the Redis connection and TTLs.
type RedisConfig struct {
	// URL in the form redis://[:password@]host[:port][/database]. Empty disables caching.
	URL string `mapstructure:"REDIS_URL"`
	// OrderCacheTTLSeconds is how long fetched orders and customers stay cached. 0 disables the cache.
	OrderCacheTTLSeconds int `mapstructure:"ORDER_CACHE_TTL_SECONDS" default:"30"`
	// JobTTLSeconds is how long print job summaries are kept.
	JobTTLSeconds int `mapstructure:"JOB_TTL_SECONDS" default:"86400"`
}

// OrderCacheTTL returns the order cache TTL.
func (c RedisConfig) OrderCacheTTL() time.Duration {
	return time.Duration(c.OrderCacheTTLSeconds) * time.Second
}

// JobTTL returns the job summary TTL.
func (c RedisConfig) JobTTL() time.Duration {
	return time.Duration(c.JobTTLSeconds) * time.Second
}

// LabelsConfig holds defaults for the label pipeline.
type LabelsConfig struct {
	// BatchConcurrency is the number of orders fetched at once. 1 keeps fetches sequential.
	BatchConcurrency int `mapstructure:"BATCH_CONCURRENCY" default:"1"`
	// DefaultCarrier is used when a request has no type parameter.
	DefaultCarrier string `mapstructure:"DEFAULT_CARRIER" default:"standard"`
	// DefaultPageFormat is used when a request has no format parameter.
	DefaultPageFormat string `mapstructure:"DEFAULT_PAGE_FORMAT" default:"100x150"`
	// QRServiceURL is an optional QR image service; "{data}" is replaced by the escaped value
	// and "{size}" by the size in pixels. Empty renders QR codes locally.
	QRServiceURL string `mapstructure:"QR_SERVICE_URL"`
	// QRServiceTimeoutSeconds bounds one request to the QR image service.
	QRServiceTimeoutSeconds int `mapstructure:"QR_SERVICE_TIMEOUT_SECONDS" default:"5"`
}

// QRServiceTimeout returns the QR image service request timeout.
func (c LabelsConfig) QRServiceTimeout() time.Duration {
	return time.Duration(c.QRServiceTimeoutSeconds) * time.Second
}

// PrinterConfig holds the settings of the PDF presenter.
type PrinterConfig struct {
	// TimeoutSeconds bounds a whole print request.
	TimeoutSeconds int `mapstructure:"PRINT_TIMEOUT_SECONDS" default:"60"`
	// ChromeBin points to a Chromium binary. Empty lets the launcher download or find one.
	ChromeBin string `mapstructure:"CHROME_BIN"`
	// FontURL is an optional stylesheet with the label fonts, linked from every document.
	FontURL string `mapstructure:"PRINT_FONT_URL"`
}

// Timeout returns the print request timeout.
func (c PrinterConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// SenderConfig is the return address block.
type SenderConfig struct {
	Name    string `mapstructure:"SENDER_NAME"`
	Phone   string `mapstructure:"SENDER_PHONE"`
	Address string `mapstructure:"SENDER_ADDRESS"`
}

// ProxyConfig holds the optional upstream proxy.
type ProxyConfig struct {
	Enabled  bool   `mapstructure:"PROXY_ENABLED" default:"false"`
	Hostname string `mapstructure:"PROXY_HOST"`
	Port     int    `mapstructure:"PROXY_PORT"`
	Username string `mapstructure:"PROXY_USERNAME"`
	Password string `mapstructure:"PROXY_PASSWORD"`
}

// Location resolves the configured timezone, falling back to UTC.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Load loads configuration from .env files and environment variables.
func Load(path string) (*AppConfig, error) {
	v := viper.New()

	v.AutomaticEnv()

	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config AppConfig

	if err := processTags(v, &config); err != nil {
		return nil, err
	}

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := validateRequired(&config); err != nil {
		return nil, err
	}

	config.Labels.BatchConcurrency = max(config.Labels.BatchConcurrency, 1)

	return &config, nil
}

// processTags iterates over the struct fields and sets default values in Viper.
func processTags(v *viper.Viper, config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := processTags(v, val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		key := field.Tag.Get("mapstructure")
		defaultValue := field.Tag.Get("default")

		if key != "" {
			v.BindEnv(key)
		}

		if key != "" && defaultValue != "" {
			v.SetDefault(key, defaultValue)
		}
	}
	return nil
}

// validateRequired checks if fields marked as required have non-zero values.
func validateRequired(config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := validateRequired(val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		required := field.Tag.Get("required")
		if required == "true" {
			value := val.Field(i)
			if isZero(value) {
				key := field.Tag.Get("mapstructure")
				return fmt.Errorf("missing required configuration: %s", key)
			}
		}
	}
	return nil
}

// isZero checks if a reflect.Value is the zero value for its type.
func isZero(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return v.String() == ""
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	default:
		return v.IsZero()
	}
}
