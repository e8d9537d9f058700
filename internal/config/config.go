package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	StoreBackend  = "backend"
	StorePostgres = "postgres"

	NotifierCallable = "callable"
	NotifierSMTP     = "smtp"

	DuplicateAllow     = "allow"
	DuplicateReject    = "reject"
	DuplicateSupersede = "supersede"
)

type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	JWT          JWTConfig
	SMTP         SMTPConfig
	RateLimit    RateLimitConfig
	CORS         CORSConfig
	Backend      BackendConfig
	Notification NotificationConfig
	Store        StoreConfig
	Invitation   InvitationConfig
	Telemetry    TelemetryConfig
	Redis        RedisConfig
	MQTT         MQTTConfig
}

type ServerConfig struct {
	Port        string
	Host        string
	Environment string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type JWTConfig struct {
	Secret string
}

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	FromName string
}

type RateLimitConfig struct {
	GeneralRPS   float64 // Requests per second for general endpoints
	GeneralBurst int     // Burst size for general endpoints
}

type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

// BackendConfig points at the backend data API that owns drivers,
// invitations and telemetry.
type BackendConfig struct {
	BaseURL      string
	Timeout      time.Duration
	ServiceToken string // used when no admin session is in scope
}

type NotificationConfig struct {
	Provider    string
	CallableURL string
	Timeout     time.Duration
}

type StoreConfig struct {
	Driver string
}

type InvitationConfig struct {
	DuplicatePolicy string
}

type TelemetryConfig struct {
	Timezone  string
	WeekStart time.Weekday
}

type RedisConfig struct {
	Addr        string
	Password    string
	DB          int
	SequenceTTL time.Duration
}

type MQTTConfig struct {
	Broker      string
	ClientID    string
	Username    string
	Password    string
	EventTopic  string
	SignupTopic string
	QoS         byte
}

func setDefaults() {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("SMTP_FROM_NAME", "DriveBuddy Team")
	viper.SetDefault("RATE_LIMIT_GENERAL_RPS", 10)
	viper.SetDefault("RATE_LIMIT_GENERAL_BURST", 20)
	viper.SetDefault("CORS_ALLOWED_METHODS", "GET,POST,PUT,DELETE,OPTIONS")
	viper.SetDefault("CORS_ALLOWED_HEADERS", "Origin,Content-Type,Authorization,X-Request-ID")
	viper.SetDefault("CORS_EXPOSED_HEADERS", "X-Request-ID,Content-Disposition")
	viper.SetDefault("CORS_MAX_AGE", 43200)
	viper.SetDefault("BACKEND_TIMEOUT", "30s")
	viper.SetDefault("NOTIFICATION_PROVIDER", NotifierCallable)
	viper.SetDefault("NOTIFICATION_TIMEOUT", "20s")
	viper.SetDefault("STORE_DRIVER", StoreBackend)
	viper.SetDefault("INVITATION_DUPLICATE_POLICY", DuplicateAllow)
	viper.SetDefault("TELEMETRY_TIMEZONE", "America/Vancouver")
	viper.SetDefault("TELEMETRY_WEEK_START", "sunday")
	viper.SetDefault("REDIS_SEQUENCE_TTL", "1h")
	viper.SetDefault("MQTT_CLIENT_ID", "drivebuddy-admin")
	viper.SetDefault("MQTT_EVENT_TOPIC", "drivebuddy/invitations")
	viper.SetDefault("MQTT_SIGNUP_TOPIC", "drivebuddy/signups")
	viper.SetDefault("MQTT_QOS", 1)
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AddConfigPath(".")
	if homeDir, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(homeDir)
	}
	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		log.Printf("Warning: config file not found: %v. Falling back to environment variables only.", err)
	}

	weekStart, err := parseWeekday(viper.GetString("TELEMETRY_WEEK_START"))
	if err != nil {
		return nil, err
	}

	config := &Config{
		Server: ServerConfig{
			Port:        viper.GetString("SERVER_PORT"),
			Host:        viper.GetString("SERVER_HOST"),
			Environment: viper.GetString("ENVIRONMENT"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			DBName:   viper.GetString("DB_NAME"),
			SSLMode:  viper.GetString("DB_SSLMODE"),
		},
		JWT: JWTConfig{
			Secret: viper.GetString("JWT_SECRET"),
		},
		SMTP: SMTPConfig{
			Host:     viper.GetString("SMTP_HOST"),
			Port:     viper.GetInt("SMTP_PORT"),
			User:     viper.GetString("SMTP_USER"),
			Password: viper.GetString("SMTP_PASSWORD"),
			From:     viper.GetString("SMTP_FROM"),
			FromName: viper.GetString("SMTP_FROM_NAME"),
		},
		RateLimit: RateLimitConfig{
			GeneralRPS:   viper.GetFloat64("RATE_LIMIT_GENERAL_RPS"),
			GeneralBurst: viper.GetInt("RATE_LIMIT_GENERAL_BURST"),
		},
		CORS: CORSConfig{
			AllowedOrigins:   splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
			AllowedMethods:   splitList(viper.GetString("CORS_ALLOWED_METHODS")),
			AllowedHeaders:   splitList(viper.GetString("CORS_ALLOWED_HEADERS")),
			ExposedHeaders:   splitList(viper.GetString("CORS_EXPOSED_HEADERS")),
			AllowCredentials: viper.GetBool("CORS_ALLOW_CREDENTIALS"),
			MaxAge:           viper.GetInt("CORS_MAX_AGE"),
		},
		Backend: BackendConfig{
			BaseURL:      viper.GetString("BACKEND_BASE_URL"),
			Timeout:      viper.GetDuration("BACKEND_TIMEOUT"),
			ServiceToken: viper.GetString("BACKEND_SERVICE_TOKEN"),
		},
		Notification: NotificationConfig{
			Provider:    strings.ToLower(viper.GetString("NOTIFICATION_PROVIDER")),
			CallableURL: viper.GetString("NOTIFICATION_CALLABLE_URL"),
			Timeout:     viper.GetDuration("NOTIFICATION_TIMEOUT"),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(viper.GetString("STORE_DRIVER")),
		},
		Invitation: InvitationConfig{
			DuplicatePolicy: strings.ToLower(viper.GetString("INVITATION_DUPLICATE_POLICY")),
		},
		Telemetry: TelemetryConfig{
			Timezone:  viper.GetString("TELEMETRY_TIMEZONE"),
			WeekStart: weekStart,
		},
		Redis: RedisConfig{
			Addr:        viper.GetString("REDIS_ADDR"),
			Password:    viper.GetString("REDIS_PASSWORD"),
			DB:          viper.GetInt("REDIS_DB"),
			SequenceTTL: viper.GetDuration("REDIS_SEQUENCE_TTL"),
		},
		MQTT: MQTTConfig{
			Broker:      viper.GetString("MQTT_BROKER"),
			ClientID:    viper.GetString("MQTT_CLIENT_ID"),
			Username:    viper.GetString("MQTT_USERNAME"),
			Password:    viper.GetString("MQTT_PASSWORD"),
			EventTopic:  viper.GetString("MQTT_EVENT_TOPIC"),
			SignupTopic: viper.GetString("MQTT_SIGNUP_TOPIC"),
			QoS:         byte(viper.GetUint("MQTT_QOS")),
		},
	}

	return config, nil
}

// Validate checks enum settings and the settings each selected adapter needs.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET is required")
	}

	// telemetry is always served by the data API
	if c.Backend.BaseURL == "" {
		return errors.New("BACKEND_BASE_URL is required")
	}

	switch c.Store.Driver {
	case StoreBackend:
	case StorePostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			return errors.New("DB_HOST and DB_NAME are required when STORE_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver)
	}

	switch c.Notification.Provider {
	case NotifierCallable:
		if c.Notification.CallableURL == "" {
			return errors.New("NOTIFICATION_CALLABLE_URL is required when NOTIFICATION_PROVIDER=callable")
		}
	case NotifierSMTP:
		if c.SMTP.Host == "" || c.SMTP.From == "" {
			return errors.New("SMTP_HOST and SMTP_FROM are required when NOTIFICATION_PROVIDER=smtp")
		}
	default:
		return fmt.Errorf("unknown NOTIFICATION_PROVIDER %q", c.Notification.Provider)
	}

	switch c.Invitation.DuplicatePolicy {
	case DuplicateAllow, DuplicateReject, DuplicateSupersede:
	default:
		return fmt.Errorf("unknown INVITATION_DUPLICATE_POLICY %q", c.Invitation.DuplicatePolicy)
	}

	if c.MQTT.QoS > 2 {
		return fmt.Errorf("MQTT_QOS must be 0, 1 or 2, got %d", c.MQTT.QoS)
	}

	return nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func parseWeekday(s string) (time.Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sunday", "sun":
		return time.Sunday, nil
	case "monday", "mon":
		return time.Monday, nil
	}
	return time.Sunday, fmt.Errorf("TELEMETRY_WEEK_START must be sunday or monday, got %q", s)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
