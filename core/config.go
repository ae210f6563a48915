package core

import (
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Database engines
const (
	EngineMemory   = "memory"
	EngineMongo    = "mongo"
	EnginePostgres = "postgres"
)

// Sequence backends
const (
	SequenceStore = "store"
	SequenceRedis = "redis"
)

type (
	Config struct {
		Env                       string
		Build                     string
		Debug                     bool
		TestMode                  bool
		AppName                   string
		SecretKey                 string
		FrontendBaseURL           string
		SendgridApiKey            string
		RollbarToken              string
		PasswordResetTimeoutDelta time.Duration

		Server   ServerConfig
		Database DatabaseConfig
		Sequence SequenceConfig
		Purchase PurchaseConfig
		View     ViewConfig

		defaultFromEmail string
	}

	ServerConfig struct {
		Address                string
		Host                   string
		DebugAddress           string
		SessionExpirationDelta time.Duration
		ShutdownTimeout        time.Duration
	}

	DatabaseConfig struct {
		Engine       string
		URI          string
		Name         string
		PingAttempts uint
		PingDelay    time.Duration
	}

	SequenceConfig struct {
		Backend       string
		RedisAddr     string
		RedisPassword string
		RedisDB       int
	}

	PurchaseConfig struct {
		Mode string // atomic | sequential
	}

	ViewConfig struct {
		// Placeholders substitutes sample datasets when a fetch fails (always flagged as degraded).
		Placeholders bool
	}
)

// DefaultFromEmail parses the configured sender; falls back to a bare address.
func (c *Config) DefaultFromEmail() mail.Address {
	if addr, err := mail.ParseAddress(c.defaultFromEmail); err == nil {
		return *addr
	}
	return mail.Address{Name: c.AppName, Address: c.defaultFromEmail}
}

func newViper() *viper.Viper {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("build", "dev")
	v.SetDefault("appName", "Yoga Studio")
	v.SetDefault("secretKey", "k8#n2q@r!7vz$w^3e5t1m&x9b0c4p6ls")
	v.SetDefault("frontendBaseURL", "http://localhost:8081")
	v.SetDefault("defaultFromEmail", "noreply@localhost")
	v.SetDefault("sendgridApiKey", "")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("passwordResetTimeoutDelta", 3*24*time.Hour)

	v.SetDefault("server.address", ":8000")
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.debugAddress", ":4000")
	v.SetDefault("server.sessionExpirationDelta", 7*24*time.Hour)
	v.SetDefault("server.shutdownTimeout", 5*time.Second)

	v.SetDefault("database.engine", EngineMemory)
	v.SetDefault("database.uri", "")
	v.SetDefault("database.name", "yoga")
	v.SetDefault("database.pingAttempts", 10)
	v.SetDefault("database.pingDelay", 200*time.Millisecond)

	v.SetDefault("sequence.backend", SequenceStore)
	v.SetDefault("sequence.redisAddr", "localhost:6379")
	v.SetDefault("sequence.redisPassword", "")
	v.SetDefault("sequence.redisDB", 0)

	v.SetDefault("purchase.mode", "atomic")
	v.SetDefault("view.placeholders", false)

	// nested keys are read from env as SERVER_ADDRESS, DATABASE_URI, ...
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

// NewConfig loads the configuration for the current ENV (DEV by default).
func NewConfig() *Config {
	v := newViper()

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	if env == "" {
		env = "DEV"
	}
	if env == "TEST" {
		v.SetDefault("testMode", true)
		v.SetDefault("view.placeholders", false)
	}
	v.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	wd, err := os.Getwd()
	if err != nil {
		log.Fatalf("config.os.Getwd(): %v", err)
	}
	dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	return fromViper(env, v)
}

func fromViper(env string, v *viper.Viper) *Config {
	return &Config{
		Env:                       env,
		Build:                     v.GetString("build"),
		Debug:                     v.GetBool("debug"),
		TestMode:                  v.GetBool("testMode"),
		AppName:                   v.GetString("appName"),
		SecretKey:                 v.GetString("secretKey"),
		FrontendBaseURL:           v.GetString("frontendBaseURL"),
		SendgridApiKey:            v.GetString("sendgridApiKey"),
		RollbarToken:              v.GetString("rollbarToken"),
		PasswordResetTimeoutDelta: v.GetDuration("passwordResetTimeoutDelta"),
		Server: ServerConfig{
			Address:                v.GetString("server.address"),
			Host:                   v.GetString("server.host"),
			DebugAddress:           v.GetString("server.debugAddress"),
			SessionExpirationDelta: v.GetDuration("server.sessionExpirationDelta"),
			ShutdownTimeout:        v.GetDuration("server.shutdownTimeout"),
		},
		Database: DatabaseConfig{
			Engine:       strings.ToLower(v.GetString("database.engine")),
			URI:          v.GetString("database.uri"),
			Name:         v.GetString("database.name"),
			PingAttempts: v.GetUint("database.pingAttempts"),
			PingDelay:    v.GetDuration("database.pingDelay"),
		},
		Sequence: SequenceConfig{
			Backend:       strings.ToLower(v.GetString("sequence.backend")),
			RedisAddr:     v.GetString("sequence.redisAddr"),
			RedisPassword: v.GetString("sequence.redisPassword"),
			RedisDB:       v.GetInt("sequence.redisDB"),
		},
		Purchase: PurchaseConfig{
			Mode: strings.ToLower(v.GetString("purchase.mode")),
		},
		View: ViewConfig{
			Placeholders: v.GetBool("view.placeholders"),
		},
		defaultFromEmail: v.GetString("defaultFromEmail"),
	}
}

// NewTestConfig returns the defaults with test mode on; nothing is read from the environment.
func NewTestConfig() *Config {
	v := newViper()
	v.Set("testMode", true)
	v.Set("debug", false)
	return fromViper("TEST", v)
}
