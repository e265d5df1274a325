package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port   string
	DBPath string

	// AdminKey gates verify/pool/purchase/payout routes. Empty means the
	// gate fails closed: no request passes.
	AdminKey string

	// Ledger policy. The 85/10/5 split is program configuration, not a
	// structural constant; shares must sum to 1.
	PoolThresholdTCO2e float64
	PricePerTCO2eKES   float64
	FarmerShare        float64
	CoopShare          float64
	PlatformShare      float64

	// Remote adapters; empty endpoint selects the deterministic mock.
	ScoringEndpoint  string
	ScoringAPIKey    string
	DisburseEndpoint string
	DisburseAPIKey   string
}

func Load() AppConfig {
	if err := godotenv.Load(); err != nil {
		log.Printf("[cfg] No .env file found or error loading: %v", err)
	}

	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	getF := func(k string, def float64) float64 {
		if v := os.Getenv(k); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return f
			}
			log.Printf("[cfg] %s=%q is not a number, using %v", k, v, def)
		}
		return def
	}

	cfg := AppConfig{
		Port:               get("PORT", "8080"),
		DBPath:             get("DB_PATH", "carbonledger.db"),
		AdminKey:           get("ADMIN_KEY", ""),
		PoolThresholdTCO2e: getF("POOL_THRESHOLD_TCO2E", 50),
		PricePerTCO2eKES:   getF("PRICE_PER_TCO2E_KES", 2350),
		FarmerShare:        getF("FARMER_SHARE", 0.85),
		CoopShare:          getF("COOP_SHARE", 0.10),
		PlatformShare:      getF("PLATFORM_SHARE", 0.05),
		ScoringEndpoint:    get("SCORING_ENDPOINT", ""),
		ScoringAPIKey:      get("SCORING_API_KEY", ""),
		DisburseEndpoint:   get("DISBURSE_ENDPOINT", ""),
		DisburseAPIKey:     get("DISBURSE_API_KEY", ""),
	}
	if s := cfg.FarmerShare + cfg.CoopShare + cfg.PlatformShare; s < 0.999 || s > 1.001 {
		log.Fatalf("[cfg] revenue shares must sum to 1, got %.4f", s)
	}
	log.Printf("[cfg] port=%s db=%s threshold=%.1f price=%.0f split=%.2f/%.2f/%.2f",
		cfg.Port, cfg.DBPath, cfg.PoolThresholdTCO2e, cfg.PricePerTCO2eKES,
		cfg.FarmerShare, cfg.CoopShare, cfg.PlatformShare)
	return cfg
}
