package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config concentra toda la configuración del proceso.
// Se lee UNA vez al arrancar; claves requeridas faltantes abortan el startup.
type Config struct {
	Port string

	// DBDSN vacío => repos in-memory (modo dev / tests).
	DBDSN string

	// Auth: o verificación remota (base URL + api key del proveedor),
	// o verificación local del JWT (secret HS256). Al menos una, salvo DevMode.
	AuthBaseURL   string
	AuthAPIKey    string
	AuthJWTSecret string

	// Proveedor de lenguaje (API compatible con chat-completions).
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string

	LogLevel string

	// DevMode habilita X-Debug-User-ID y permite arrancar sin auth configurada.
	DevMode bool
}

// Load lee la configuración desde variables de entorno vía viper.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8787")
	v.SetDefault("OPENAI_MODEL", "gpt-4o-mini")
	v.SetDefault("OPENAI_BASE_URL", "https://api.openai.com/v1")
	v.SetDefault("LOG_LEVEL", "info")

	cfg := &Config{
		Port:          strings.TrimSpace(v.GetString("PORT")),
		DBDSN:         strings.TrimSpace(v.GetString("DB_DSN")),
		AuthBaseURL:   strings.TrimSpace(v.GetString("AUTH_BASE_URL")),
		AuthAPIKey:    strings.TrimSpace(v.GetString("AUTH_API_KEY")),
		AuthJWTSecret: strings.TrimSpace(v.GetString("AUTH_JWT_SECRET")),
		OpenAIAPIKey:  strings.TrimSpace(v.GetString("OPENAI_API_KEY")),
		OpenAIModel:   strings.TrimSpace(v.GetString("OPENAI_MODEL")),
		OpenAIBaseURL: strings.TrimSpace(v.GetString("OPENAI_BASE_URL")),
		LogLevel:      strings.TrimSpace(v.GetString("LOG_LEVEL")),
		DevMode:       v.GetBool("DEV_MODE"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate aplica las reglas de claves requeridas.
func (c *Config) Validate() error {
	if c.OpenAIAPIKey == "" {
		return errors.New("config: OPENAI_API_KEY is required")
	}

	hasRemote := c.AuthBaseURL != "" && c.AuthAPIKey != ""
	hasLocal := c.AuthJWTSecret != ""
	if !hasRemote && !hasLocal && !c.DevMode {
		return errors.New("config: set AUTH_BASE_URL+AUTH_API_KEY or AUTH_JWT_SECRET (or DEV_MODE=true)")
	}

	// base URL parcial es casi seguro un typo: mejor cortar acá que fallar en runtime.
	if (c.AuthBaseURL == "") != (c.AuthAPIKey == "") {
		return fmt.Errorf("config: AUTH_BASE_URL and AUTH_API_KEY must be set together")
	}

	return nil
}
