package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort    string
	DatabaseDSN string
	JWTSecret   string
	CORSOrigins string

	// Parameter proyeksi pertumbuhan. Nilai default mengikuti asumsi lapangan;
	// semuanya bisa dioverride per request lewat query param.
	GrowthRateGramPerDay float64
	TargetWeightGram     float64
	SurvivalRate         float64
	StockingWeightGram   float64 // asumsi berat benih saat tebar, untuk kolam tanpa sampling
	FeedCostPerKg        float64 // rupiah
}

func Load() (*Config, error) {
	// .env opsional; kalau tidak ada, konfigurasi diambil langsung dari environment.
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		DatabaseDSN: getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=tambak port=5432 sslmode=disable"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		CORSOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),

		GrowthRateGramPerDay: getEnvFloat("GROWTH_RATE_GRAM_PER_DAY", 2.5),
		TargetWeightGram:     getEnvFloat("TARGET_WEIGHT_GRAM", 150),
		SurvivalRate:         getEnvFloat("SURVIVAL_RATE", 0.85),
		StockingWeightGram:   getEnvFloat("STOCKING_WEIGHT_GRAM", 5),
		FeedCostPerKg:        getEnvFloat("FEED_COST_PER_KG", 16000),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET wajib diisi")
	}
	if len(c.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET minimal 32 karakter")
	}
	if c.GrowthRateGramPerDay <= 0 {
		return fmt.Errorf("GROWTH_RATE_GRAM_PER_DAY harus > 0")
	}
	if c.TargetWeightGram <= 0 {
		return fmt.Errorf("TARGET_WEIGHT_GRAM harus > 0")
	}
	if c.SurvivalRate <= 0 || c.SurvivalRate > 1 {
		return fmt.Errorf("SURVIVAL_RATE harus di rentang (0, 1]")
	}
	if c.StockingWeightGram <= 0 {
		return fmt.Errorf("STOCKING_WEIGHT_GRAM harus > 0")
	}
	if c.FeedCostPerKg < 0 {
		return fmt.Errorf("FEED_COST_PER_KG tidak boleh negatif")
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}
