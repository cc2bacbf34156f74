// Command issue_token prints a bearer token for the API.
//
//	issue_token -sub caixa-1 -ttl 720h
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"pixfacil/internal/config"
	"pixfacil/internal/utils"
)

func main() {
	config.LoadEnv()

	subject := flag.String("sub", "operator", "token subject")
	role := flag.String("role", "operator", "role claim")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	secret := config.GetEnv("JWT_SECRET", "")
	if secret == "" {
		log.Fatal("JWT_SECRET must be set in environment")
	}

	token, err := utils.GenerateToken(secret, *subject, *role, *ttl)
	if err != nil {
		log.Fatalf("Failed to sign token: %v", err)
	}
	fmt.Println(token)
}
