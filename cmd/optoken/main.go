package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/anuragkar/scambait/internal/config"
	"github.com/anuragkar/scambait/internal/security"
)

// Mints a bearer token for the operator API (/api/v1). The token is signed
// with the same JWT_SECRET the server validates against.
func main() {
	operator := flag.String("operator", "", "operator name embedded in the token (required)")
	ttl := flag.Duration("ttl", 0, "token lifetime; defaults to auth.operator_token_ttl")
	flag.Parse()

	if *operator == "" {
		fmt.Fprintln(os.Stderr, "usage: optoken -operator <name> [-ttl 12h]")
		os.Exit(2)
	}

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if cfg.Auth.JWTSecret == "" {
		fmt.Fprintln(os.Stderr, "JWT_SECRET is not set; the server would reject any token minted here")
		os.Exit(1)
	}

	tokenTTL := cfg.Auth.OperatorTokenTTL
	if *ttl > 0 {
		tokenTTL = *ttl
	}
	if tokenTTL <= 0 {
		tokenTTL = 12 * time.Hour
	}

	token, err := security.NewJWTManager(cfg.Auth.JWTSecret, tokenTTL).GenerateOperatorToken(*operator)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to mint token: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(token)
	fmt.Fprintf(os.Stderr, "operator %q, expires in %s\n", *operator, tokenTTL)
}
