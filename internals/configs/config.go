package configs

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

var (
	JWTSecret  string
	CronSecret string

	// StoreLocation is the single tenant-wide timezone. Every piece of
	// date arithmetic (occurrence expansion, staleness sweep, weekly
	// scoring) resolves "today" and "this week" against this zone, never
	// against the server clock.
	StoreLocation *time.Location
)

const defaultTimezone = "Asia/Jakarta"

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ No .env file found, using system ENV")
		} else {
			log.Println("✅ .env file loaded")
		}
	} else {
		log.Println("🚀 Running in Railway, using system ENV")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	CronSecret = GetEnv("CRON_SECRET")

	if JWTSecret == "" {
		log.Println("❌ JWT_SECRET is not set!")
	} else {
		log.Println("✅ JWT_SECRET loaded.")
	}
	if CronSecret == "" {
		log.Println("❌ CRON_SECRET is not set — job trigger endpoint will refuse all calls!")
	} else {
		log.Println("✅ CRON_SECRET loaded.")
	}

	StoreLocation = loadLocation(GetEnv("STORE_TIMEZONE", defaultTimezone))
	log.Printf("✅ Store timezone: %s", StoreLocation.String())
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func loadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("⚠️ Invalid STORE_TIMEZONE %q, falling back to %s: %v", name, defaultTimezone, err)
		loc, err = time.LoadLocation(defaultTimezone)
		if err != nil {
			return time.FixedZone(defaultTimezone, 7*3600)
		}
	}
	return loc
}
