package config

import "github.com/caarlos0/env/v10"

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL,required"`
	// Zona horaria usada para calcular el dia de la variedad diaria.
	Timezone string `env:"TIMEZONE" envDefault:"UTC"`

	LLMProvider       string `env:"LLM_PROVIDER" envDefault:"openai"`
	LLMAPIKey         string `env:"LLM_API_KEY"`
	LLMBaseURL        string `env:"LLM_BASE_URL" envDefault:"https://api.openai.com/v1"`
	LLMModel          string `env:"LLM_MODEL" envDefault:"gpt-5.1"`
	LLMMaxTokens      int    `env:"LLM_MAX_TOKENS" envDefault:"150"`
	LLMTimeoutSeconds int    `env:"LLM_TIMEOUT_SECONDS" envDefault:"20"`
	GeminiAPIKey      string `env:"GEMINI_API_KEY"`
	GeminiModel       string `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`

	ExplanationCacheTTLMinutes int `env:"EXPLANATION_CACHE_TTL_MINUTES" envDefault:"360"`

	RedisAddr                 string `env:"REDIS_ADDR"`
	RedisPassword             string `env:"REDIS_PASSWORD"`
	RedisDB                   int    `env:"REDIS_DB" envDefault:"0"`
	GenerateRateWindowSeconds int    `env:"GENERATE_RATE_WINDOW_SECONDS" envDefault:"60"`
	GenerateRateMax           int    `env:"GENERATE_RATE_MAX" envDefault:"10"`

	JWTSecret           string `env:"JWT_SECRET"`
	JWTAccessTTLMinutes int    `env:"JWT_ACCESS_TTL_MINUTES" envDefault:"720"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
