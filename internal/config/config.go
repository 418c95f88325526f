package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds environment-driven configuration.
type Config struct {
	Addr        string
	DatabaseURL string
	JWTSecret   string

	// RedisURL switches the cart store from process memory to Redis when set.
	RedisURL string
	CartTTL  time.Duration

	StoreName       string
	WhatsAppNumber  string
	WhatsAppBaseURL string
	DeliveryFee     decimal.Decimal

	DefaultSizeQuantity int
	DefaultProductImage string

	BootstrapSchema bool
	AllowReset      bool
}

const (
	defaultAddr           = ":8080"
	defaultStoreName      = "Tshirts Sbilus"
	defaultWhatsAppNumber = "5585988439111"
	defaultWhatsAppBase   = "https://wa.me"
	defaultDeliveryFee    = "12.90"
	defaultSizeQuantity   = 5
	defaultCartTTL        = 24 * time.Hour
	defaultProductImage   = "https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?w=400&h=400&fit=crop"
)

// Load reads .env (when present) and then the process environment.
func Load() Config {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from the given lookup function. Invalid values fall
// back to their defaults with a warning.
func FromEnv(getenv func(string) string) Config {
	cfg := Config{
		Addr:                stringOr(getenv("STOREFRONT_ADDR"), defaultAddr),
		DatabaseURL:         getenv("DATABASE_URL"),
		JWTSecret:           getenv("JWT_SECRET"),
		RedisURL:            getenv("REDIS_URL"),
		CartTTL:             defaultCartTTL,
		StoreName:           stringOr(getenv("STORE_NAME"), defaultStoreName),
		WhatsAppNumber:      stringOr(getenv("WHATSAPP_NUMBER"), defaultWhatsAppNumber),
		WhatsAppBaseURL:     stringOr(getenv("WHATSAPP_BASE_URL"), defaultWhatsAppBase),
		DeliveryFee:         decimal.RequireFromString(defaultDeliveryFee),
		DefaultSizeQuantity: defaultSizeQuantity,
		DefaultProductImage: stringOr(getenv("DEFAULT_PRODUCT_IMAGE"), defaultProductImage),
		BootstrapSchema:     getenv("BOOTSTRAP_SCHEMA") == "1",
		AllowReset:          getenv("ALLOW_RESET_PRODUCTS") == "1",
	}

	if v := getenv("CART_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.CartTTL = d
		} else {
			log.Printf("[WARN] config: invalid CART_TTL %q, using %s", v, defaultCartTTL)
		}
	}
	if v := getenv("DELIVERY_FEE"); v != "" {
		if fee, err := decimal.NewFromString(v); err == nil && !fee.IsNegative() {
			cfg.DeliveryFee = fee
		} else {
			log.Printf("[WARN] config: invalid DELIVERY_FEE %q, using %s", v, defaultDeliveryFee)
		}
	}
	if v := getenv("DEFAULT_SIZE_QUANTITY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.DefaultSizeQuantity = n
		} else {
			log.Printf("[WARN] config: invalid DEFAULT_SIZE_QUANTITY %q, using %d", v, defaultSizeQuantity)
		}
	}

	return cfg
}

func stringOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
