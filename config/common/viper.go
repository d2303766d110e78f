package common

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/spf13/viper"
)

type Config struct {
	Viper *viper.Viper
}

func NewViper() *Config {
	config := viper.New()
	config.SetConfigFile(".env")
	config.SetConfigType("env")
	config.AddConfigPath("../")
	config.AutomaticEnv()
	setDefaults(config)

	log.Trace("Checking file .env ....")
	if err := config.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			panic(fmt.Sprintf("failed read config: %v", err))
		}
		log.Warn("No .env file found, reading configuration from environment")
	}
	return &Config{Viper: config}
}

// NewConfig wraps an already populated viper instance.
func NewConfig(v *viper.Viper) *Config {
	setDefaults(v)
	return &Config{Viper: v}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "support-desk-api")
	v.SetDefault("APP_PORT", "7720")
	v.SetDefault("CORS_ALLOW_ORIGINS", "http://localhost:8080")
	v.SetDefault("DB_TIMEZONE", "Africa/Lagos")
	v.SetDefault("JWT_TTL", "1h")
	v.SetDefault("OTP_TTL", "15m")
	v.SetDefault("OTP_RESEND_TTL", "10m")
	v.SetDefault("OTP_LENGTH", 4)
	v.SetDefault("AMQP_EXCHANGE", "support-desk")
	v.SetDefault("AMQP_RETRY_ATTEMPTS", 5)
	v.SetDefault("AMQP_RETRY_DELAY", "1s")
	v.SetDefault("AMQP_PUBLISH_TIMEOUT", "5s")
	v.SetDefault("OTP_MAX_ATTEMPTS", 5)
	v.SetDefault("LOG_DIR", "logs")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_CONSOLE", true)
}

func (c *Config) GetAppConfig() (appName string) {
	return c.Viper.GetString("APP_NAME")
}

func (c *Config) GetListenAddr() string {
	return ":" + c.Viper.GetString("APP_PORT")
}

func (c *Config) GetCorsOrigins() string {
	return strings.TrimSpace(c.Viper.GetString("CORS_ALLOW_ORIGINS"))
}

func (c *Config) GetDatabaseConfig() (dbHost, dbUser, dbPassword, dbName, dbPort string) {
	dbHost = c.Viper.GetString("DB_HOSTNAME")
	dbUser = c.Viper.GetString("DB_USER")
	dbPassword = c.Viper.GetString("DB_PASSWORD")
	dbName = c.Viper.GetString("DB_NAME")
	dbPort = c.Viper.GetString("DB_PORT")

	return dbHost, dbUser, dbPassword, dbName, dbPort
}

func (c *Config) GetDatabaseTimezone() string {
	return c.Viper.GetString("DB_TIMEZONE")
}

func (c *Config) GetJwtConfig() []byte {
	jwtSecret := c.Viper.GetString("JWT_SECRET")
	return []byte(jwtSecret)
}

func (c *Config) GetJwtTTL() time.Duration {
	return c.Viper.GetDuration("JWT_TTL")
}

// GetOtpConfig returns the OTP length, the expiry used at registration and the
// expiry used when an OTP is resent.
func (c *Config) GetOtpConfig() (length int, ttl, resendTTL time.Duration) {
	return c.Viper.GetInt("OTP_LENGTH"), c.Viper.GetDuration("OTP_TTL"), c.Viper.GetDuration("OTP_RESEND_TTL")
}

func (c *Config) GetBrokerPublishTimeout() time.Duration {
	return c.Viper.GetDuration("AMQP_PUBLISH_TIMEOUT")
}

// GetOtpMaxAttempts is the number of wrong codes after which an OTP is no
// longer accepted.
func (c *Config) GetOtpMaxAttempts() int {
	return c.Viper.GetInt("OTP_MAX_ATTEMPTS")
}

func (c *Config) GetBrokerConfig() (url, exchange string, retryAttempts int, retryDelay time.Duration) {
	url = c.Viper.GetString("AMQP_URL")
	exchange = c.Viper.GetString("AMQP_EXCHANGE")
	retryAttempts = c.Viper.GetInt("AMQP_RETRY_ATTEMPTS")
	retryDelay = c.Viper.GetDuration("AMQP_RETRY_DELAY")
	return url, exchange, retryAttempts, retryDelay
}

func (c *Config) GetLogConfig() (dir, level string, console bool) {
	return c.Viper.GetString("LOG_DIR"), c.Viper.GetString("LOG_LEVEL"), c.Viper.GetBool("LOG_CONSOLE")
}
