// Command issue_token emite un token de operador firmado con JWT_SECRET.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"outfit-planner/internal/service"
)

type tokenConfig struct {
	JWTSecret           string `env:"JWT_SECRET,required"`
	JWTAccessTTLMinutes int    `env:"JWT_ACCESS_TTL_MINUTES" envDefault:"720"`
}

func main() {
	operator := flag.String("operator", "stylist", "nombre del operador (subject del token)")
	ttl := flag.Duration("ttl", 0, "duracion del token (por defecto JWT_ACCESS_TTL_MINUTES)")
	flag.Parse()

	_ = godotenv.Load()

	var cfg tokenConfig
	if err := env.Parse(&cfg); err != nil {
		log.Fatal(err)
	}

	accessTTL := time.Duration(cfg.JWTAccessTTLMinutes) * time.Minute
	if *ttl > 0 {
		accessTTL = *ttl
	}

	token, err := service.NewJWTService(cfg.JWTSecret, accessTTL).IssueAccessToken(*operator)
	if err != nil {
		log.Fatalf("issue token: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(token); err != nil {
		log.Fatal(err)
	}
}
