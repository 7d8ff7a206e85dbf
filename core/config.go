package core

import (
	"log"
	"net"
	"net/mail"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage backends
const (
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

type (
	Config struct {
		Build    string
		Env      string
		Debug    bool
		TestMode bool
		AppName  string

		SecretKey       string
		FrontendBaseURL string
		RollbarToken    string
		SendgridApiKey  string
		defaultFrom     string

		SuperAdmin SuperAdminConfig
		Server     ServerConfig
		Database   DatabaseConfig
		Redis      RedisConfig
		Audit      AuditConfig
	}

	// SuperAdminConfig is the single credential pair granting unrestricted access.
	SuperAdminConfig struct {
		Email    string
		Password string
	}

	ServerConfig struct {
		Host               string
		Port               int
		DebugHost          string
		ReadTimeout        time.Duration
		WriteTimeout       time.Duration
		ShutdownTimeout    time.Duration
		JWTExpirationDelta time.Duration
		CORSAllowedOrigins []string
		DisableRequestLogs bool
	}

	DatabaseConfig struct {
		Backend       string // postgres | memory
		Engine        string
		Host          string
		Port          int
		Name          string
		User          string
		Password      string
		AdminUser     string
		AdminPassword string
		DisableTLS    bool
	}

	RedisConfig struct {
		URL string // empty: in-memory session revocation
	}

	AuditConfig struct {
		Schedule string // cron spec; empty disables the scheduled audit
	}
)

func (s ServerConfig) Address() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

func (db DatabaseConfig) Address() string {
	return net.JoinHostPort(db.Host, strconv.Itoa(db.Port))
}

func (c *Config) DefaultFromEmail() mail.Address {
	addr, err := mail.ParseAddress(c.defaultFrom)
	if err != nil {
		return mail.Address{Name: c.AppName, Address: c.defaultFrom}
	}
	if addr.Name == "" {
		addr.Name = c.AppName
	}
	return *addr
}

// NewConfig loads the configuration for the current ENV (DEV (local; default), TEST, QA, PROD).
func NewConfig() *Config {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("build", "dev")
	v.SetDefault("debug", true)
	v.SetDefault("appName", "Campus Registration")
	v.SetDefault("secretKey", "w7^k!z2q-campusreg-dev-only-secret-(c4m9)")
	v.SetDefault("frontendBaseURL", "http://localhost:5173")
	v.SetDefault("defaultFromEmail", "noreply@localhost")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("sendgridApiKey", "")

	v.SetDefault("superAdmin.email", "superadmin@localhost")
	v.SetDefault("superAdmin.password", "")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.debugHost", "0.0.0.0:4000")
	v.SetDefault("server.readTimeout", 5*time.Second)
	v.SetDefault("server.writeTimeout", 5*time.Second)
	v.SetDefault("server.shutdownTimeout", 5*time.Second)
	v.SetDefault("server.jwtExpirationDelta", 12*time.Hour)
	v.SetDefault("server.corsAllowedOrigins", "http://localhost:5173,http://localhost:3000")
	v.SetDefault("server.disableRequestLogs", false)

	v.SetDefault("database.backend", BackendPostgres)
	v.SetDefault("database.engine", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "campusreg")
	v.SetDefault("database.user", "campusreg")
	v.SetDefault("database.password", "")
	v.SetDefault("database.adminUser", "postgres")
	v.SetDefault("database.adminPassword", "")
	v.SetDefault("database.disableTLS", true)

	v.SetDefault("redis.url", "")
	v.SetDefault("audit.schedule", "@hourly")

	env := strings.ToUpper(os.Getenv("ENV"))
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
		v.SetDefault("database.backend", BackendMemory)
		v.SetDefault("audit.schedule", "")
	}
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	return &Config{
		Build:           v.GetString("build"),
		Env:             env,
		Debug:           v.GetBool("debug"),
		TestMode:        v.GetBool("testMode"),
		AppName:         v.GetString("appName"),
		SecretKey:       v.GetString("secretKey"),
		FrontendBaseURL: v.GetString("frontendBaseURL"),
		RollbarToken:    v.GetString("rollbarToken"),
		SendgridApiKey:  v.GetString("sendgridApiKey"),
		defaultFrom:     v.GetString("defaultFromEmail"),
		SuperAdmin: SuperAdminConfig{
			Email:    CleanString(v.GetString("superAdmin.email"), true /* lower */),
			Password: v.GetString("superAdmin.password"),
		},
		Server: ServerConfig{
			Host:               v.GetString("server.host"),
			Port:               v.GetInt("server.port"),
			DebugHost:          v.GetString("server.debugHost"),
			ReadTimeout:        v.GetDuration("server.readTimeout"),
			WriteTimeout:       v.GetDuration("server.writeTimeout"),
			ShutdownTimeout:    v.GetDuration("server.shutdownTimeout"),
			JWTExpirationDelta: v.GetDuration("server.jwtExpirationDelta"),
			CORSAllowedOrigins: splitList(v.GetString("server.corsAllowedOrigins")),
			DisableRequestLogs: v.GetBool("server.disableRequestLogs"),
		},
		Database: DatabaseConfig{
			Backend:       v.GetString("database.backend"),
			Engine:        v.GetString("database.engine"),
			Host:          v.GetString("database.host"),
			Port:          v.GetInt("database.port"),
			Name:          v.GetString("database.name"),
			User:          v.GetString("database.user"),
			Password:      v.GetString("database.password"),
			AdminUser:     v.GetString("database.adminUser"),
			AdminPassword: v.GetString("database.adminPassword"),
			DisableTLS:    v.GetBool("database.disableTLS"),
		},
		Redis: RedisConfig{URL: v.GetString("redis.url")},
		Audit: AuditConfig{Schedule: v.GetString("audit.schedule")},
	}
}

// NewTestConfig returns a Config suitable for tests: in-memory storage, no external services.
func NewTestConfig() *Config {
	return &Config{
		Build:           "test",
		Env:             "TEST",
		TestMode:        true,
		AppName:         "Campus Registration",
		SecretKey:       "secret",
		FrontendBaseURL: "http://localhost:5173",
		defaultFrom:     "noreply@localhost",
		SuperAdmin:      SuperAdminConfig{Email: "super@test.pk", Password: "super-secret"},
		Server: ServerConfig{
			Port:               8000,
			ShutdownTimeout:    time.Second,
			JWTExpirationDelta: time.Hour,
			DisableRequestLogs: true,
		},
		Database: DatabaseConfig{Backend: BackendMemory},
	}
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
