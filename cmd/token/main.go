package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/samarqand/backoffice-go/internal/config"
	"github.com/samarqand/backoffice-go/internal/domain/runlog"
	"github.com/samarqand/backoffice-go/internal/pkg/jwt"
)

// Mints an access token for an operator or admin. Token issuance is out of
// band for the API itself; this is the tool that issues them.
func main() {
	actorID := flag.String("actor", "", "actor id to embed in the token")
	role := flag.String("role", runlog.RoleOperator, "actor role: operator or admin")
	flag.Parse()

	if *actorID == "" {
		fmt.Fprintln(os.Stderr, "usage: token -actor <id> [-role operator|admin]")
		os.Exit(1)
	}
	if *role != runlog.RoleOperator && *role != runlog.RoleAdmin {
		fmt.Fprintf(os.Stderr, "unknown role %q\n", *role)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(1)
	}

	jwtService := jwt.NewJWTService(cfg.JWT.Secret)
	token, expiresAt, err := jwtService.GenerateAccessToken(*actorID, *role)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error generating token:", err)
		os.Exit(1)
	}

	fmt.Println(token)
	fmt.Fprintln(os.Stderr, "expires:", time.Unix(expiresAt, 0).Format(time.RFC3339))
}
