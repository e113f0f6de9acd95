package config

import (
	"os"
	"strconv"
	"strings"
)

// Settings holds the runtime configuration read from the environment.
type Settings struct {
	ServerPort  string
	GinMode     string
	Environment string

	DBHost     string
	DBPort     string
	DBDatabase string
	DBUsername string
	DBPassword string
	DebugSQL   bool

	JWTSecret  string
	JWTIssuer  string
	AdminEmail string

	AllowedOrigins []string
	BaseURL        string
	ThrottleSecret string

	AuthAdminURL   string
	AuthServiceKey string

	SMTP SMTPSettings

	LogFile string
}

// SMTPSettings configures outbound notification mail.
type SMTPSettings struct {
	Host          string
	Port          int
	User          string
	Pass          string
	From          string // e.g. "FormPilot <no-reply@formpilot.app>"
	SkipTLSVerify bool
}

// Enabled reports whether enough SMTP settings are present to send mail.
func (s SMTPSettings) Enabled() bool {
	return s.Host != "" && s.From != ""
}

// IsProduction reports whether ENVIRONMENT=production.
func (s Settings) IsProduction() bool {
	return s.Environment == "production"
}

// LoadSettings reads configuration from environment variables. Call it after
// godotenv.Load so values from .env are visible.
func LoadSettings() Settings {
	smtpPort, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if smtpPort == 0 {
		smtpPort = 587
	}

	return Settings{
		ServerPort:  envOr("SERVER_PORT", "8080"),
		GinMode:     os.Getenv("GIN_MODE"),
		Environment: strings.ToLower(os.Getenv("ENVIRONMENT")),

		DBHost:     envOr("DB_HOST", "127.0.0.1"),
		DBPort:     envOr("DB_PORT", "3306"),
		DBDatabase: os.Getenv("DB_DATABASE"),
		DBUsername: os.Getenv("DB_USERNAME"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DebugSQL:   strings.ToLower(os.Getenv("DEBUG_SQL")) == "true",

		JWTSecret:  os.Getenv("JWT_SECRET"),
		JWTIssuer:  os.Getenv("JWT_ISSUER"),
		AdminEmail: os.Getenv("ADMIN_EMAIL"),

		AllowedOrigins: splitList(os.Getenv("ALLOWED_ORIGINS")),
		BaseURL:        strings.TrimRight(envOr("BASE_URL", "http://localhost:8080"), "/"),
		ThrottleSecret: os.Getenv("THROTTLE_SECRET"),

		AuthAdminURL:   strings.TrimRight(os.Getenv("AUTH_ADMIN_URL"), "/"),
		AuthServiceKey: os.Getenv("AUTH_SERVICE_KEY"),

		SMTP: SMTPSettings{
			Host:          os.Getenv("SMTP_HOST"),
			Port:          smtpPort,
			User:          os.Getenv("SMTP_USER"),
			Pass:          os.Getenv("SMTP_PASS"),
			From:          os.Getenv("SMTP_FROM"),
			SkipTLSVerify: os.Getenv("SMTP_SKIP_TLS_VERIFY") == "1",
		},

		LogFile: envOr("LOG_FILE", "logs/formpilot-api.log"),
	}
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
