package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env                 string
	Port                string
	SessionSecret       string
	DatabaseURL         string
	RedisURL            string
	FrontendURLEndsWith string
	DevPassword         string
	AllowCrossSiteDev   bool
	HealthAdminKey      string

	// Service-fee discounts for PRO subscribers, percent of the base fee.
	// Applied once at order creation, never retroactively.
	ProDiscountInspection float64 // PRO_DISCOUNT_INSPECTION, default 50
	ProDiscountTrade      float64 // PRO_DISCOUNT_TRADE, default 30
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	port := viper.GetString("PORT")
	if port == "" {
		port = "8080"
	}
	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	dbURL := viper.GetString("DATABASE_URL_DEV")
	if env == "production" {
		dbURL = viper.GetString("DATABASE_URL_PROD")
	} else if env == "test" {
		dbURL = viper.GetString("DATABASE_URL_TEST")
	}
	if dbURL == "" {
		dbURL = os.Getenv("DATABASE_URL")
	}

	return &Config{
		Env:                 env,
		Port:                port,
		SessionSecret:       viper.GetString("SESSION_SECRET"),
		DatabaseURL:         dbURL,
		RedisURL:            viper.GetString("REDIS_URL"),
		FrontendURLEndsWith: viper.GetString("FRONTEND_URL_ENDS_WITH"),
		DevPassword:         viper.GetString("DEV_PASSWORD"),
		AllowCrossSiteDev:   strings.EqualFold(viper.GetString("ALLOW_CROSS_SITE_DEV"), "true"),
		HealthAdminKey:      viper.GetString("HEALTH_ADMIN_KEY"),

		ProDiscountInspection: discountOrDefault("PRO_DISCOUNT_INSPECTION", 50),
		ProDiscountTrade:      discountOrDefault("PRO_DISCOUNT_TRADE", 30),
	}, nil
}

// discountOrDefault reads a percent value and falls back when it is absent
// or outside [0,100].
func discountOrDefault(key string, def float64) float64 {
	if !viper.IsSet(key) {
		return def
	}
	v := viper.GetFloat64(key)
	if v < 0 || v > 100 {
		return def
	}
	return v
}
