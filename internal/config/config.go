package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Bind        string
	DatabaseURL string

	// Identity / session
	GoogleClientID     string
	SessionSecret      string
	SessionTTL         time.Duration
	AllowedEmailDomain string
	AdminEmails        []string
	PolicyFile         string

	// Transaction document upstreams (shared API key)
	BrokerageAPIKey   string
	TransactionAPIURL string
	ChecklistAPIURL   string
	VaultAPIURL       string

	// Issue tracker proxy
	TrackerBaseURL string
	TrackerToken   string

	// Optional integrations; their endpoints answer 503 when unset.
	KBSubdomain  string
	KBEmail      string
	KBAPIToken   string
	CardsBaseURL string
	CardsAPIKey  string

	DownloadTimeout time.Duration
	LocalDev        bool
	EnableSwagger   bool
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func required(key string, missing *[]string) string {
	v := os.Getenv(key)
	if v == "" {
		*missing = append(*missing, key)
	}
	return v
}

// Load reads configuration from the environment (and .env in local
// development). Missing secrets fail the load; there are no silent
// defaults for them.
func Load() (Config, error) {
	// .env is a local-dev convenience; absence is not an error.
	_ = godotenv.Load()

	var missing []string

	ttlHours, err := strconv.Atoi(getenv("SESSION_TTL_H", "24"))
	if err != nil || ttlHours <= 0 {
		ttlHours = 24
	}
	dlMin, err := strconv.Atoi(getenv("DOWNLOAD_TIMEOUT_MIN", "5"))
	if err != nil || dlMin <= 0 {
		dlMin = 5
	}

	cfg := Config{
		Bind:        getenv("BIND", ":3000"),
		DatabaseURL: required("DATABASE_URL", &missing),

		GoogleClientID:     required("GOOGLE_CLIENT_ID", &missing),
		SessionSecret:      required("JWT_SECRET", &missing),
		SessionTTL:         time.Duration(ttlHours) * time.Hour,
		AllowedEmailDomain: required("ALLOWED_EMAIL_DOMAIN", &missing),
		AdminEmails:        splitList(os.Getenv("ADMIN_EMAILS")),
		PolicyFile:         os.Getenv("POLICY_FILE"),

		BrokerageAPIKey:   required("BROKERAGE_API_KEY", &missing),
		TransactionAPIURL: required("TRANSACTION_API_URL", &missing),
		ChecklistAPIURL:   required("CHECKLIST_API_URL", &missing),
		VaultAPIURL:       required("VAULT_API_URL", &missing),

		TrackerBaseURL: required("TRACKER_BASE_URL", &missing),
		TrackerToken:   required("TRACKER_TOKEN", &missing),

		KBSubdomain:  os.Getenv("KB_SUBDOMAIN"),
		KBEmail:      os.Getenv("KB_EMAIL"),
		KBAPIToken:   os.Getenv("KB_API_TOKEN"),
		CardsBaseURL: os.Getenv("CARDS_BASE_URL"),
		CardsAPIKey:  os.Getenv("CARDS_API_KEY"),

		DownloadTimeout: time.Duration(dlMin) * time.Minute,
		LocalDev:        getenv("APP_ENV", "production") == "development",
		EnableSwagger:   strings.EqualFold(os.Getenv("ENABLE_SWAGGER"), "true"),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("config: missing required environment variables: %s", strings.Join(missing, ", "))
	}

	log.Printf("config: bind=%s domain=%s admins=%d session_ttl=%s swagger=%v",
		cfg.Bind, cfg.AllowedEmailDomain, len(cfg.AdminEmails), cfg.SessionTTL, cfg.EnableSwagger)
	return cfg, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
