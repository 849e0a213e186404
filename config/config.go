package config

import (
	"time"

	"com.martdev.newsroom/internal/env"
	"github.com/joho/godotenv"
)

type Configuration struct {
	Addr       string
	CORSOrigin string
	DB         dbConfig
	AuthConfig authConfig
	NATS       natsConfig
	Tracing    tracingConfig
}

type dbConfig struct {
	Addr                       string
	MaxOpenConns, MaxIdleConns int
	MaxIdleTime                string
}

type authConfig struct {
	Secret string
	Exp    time.Duration
	Iss    string
	Aud    string
}

type natsConfig struct {
	URL            string
	ConnectTimeout time.Duration
}

type tracingConfig struct {
	Endpoint string
}

var Config = initConfig()

func initConfig() Configuration {
	// a missing .env is fine, the process environment still applies
	_ = godotenv.Load()

	return Configuration{
		Addr:       env.GetString("ADDR", ":8080"),
		CORSOrigin: env.GetString("CORS_ALLOWED_ORIGIN", "http://127.0.0.1:4040"),
		DB: dbConfig{
			Addr:         env.GetString("DB_ADDR", ""),
			MaxOpenConns: env.GetInt("DB_MAX_OPEN_CONNS", 30),
			MaxIdleConns: env.GetInt("DB_MAX_IDLE_CONNS", 30),
			MaxIdleTime:  env.GetString("DB_MAX_IDLE_TIME", "15m"),
		},
		AuthConfig: authConfig{
			Secret: env.GetString("AUTH_TOKEN_SECRET", "test"),
			Exp:    env.GetDuration("AUTH_TOKEN_EXP", time.Minute*15),
			Iss:    env.GetString("AUTH_TOKEN_ISS", "Newsroom"),
			Aud:    env.GetString("AUTH_TOKEN_AUD", "Newsroom"),
		},
		NATS: natsConfig{
			URL:            env.GetString("NATS_URL", ""),
			ConnectTimeout: env.GetDuration("NATS_CONNECT_TIMEOUT", 5*time.Second),
		},
		Tracing: tracingConfig{
			Endpoint: env.GetString("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		},
	}
}
