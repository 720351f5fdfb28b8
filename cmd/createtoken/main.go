package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jayelcee/internhq/security"
)

// Mints a token from INTERNHQ_SIGNING_SECRET for ops and API testing.
func main() {
	id := flag.Uint("id", 1, "user id")
	email := flag.String("email", "admin@internhq.local", "email claim")
	name := flag.String("name", "Ops Admin", "display name claim")
	role := flag.String("role", "admin", "role claim (admin or intern)")
	ttl := flag.Duration("ttl", time.Hour, "token lifetime")
	flag.Parse()

	secret := os.Getenv("INTERNHQ_SIGNING_SECRET")
	if secret == "" {
		log.Fatal("INTERNHQ_SIGNING_SECRET is required")
	}

	token, err := security.CreateIdentityToken(&security.Identity{
		UserID: uint(*id),
		Name:   *name,
		Email:  *email,
		Role:   *role,
	}, secret, *ttl)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(token)
}
