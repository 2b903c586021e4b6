// Command devtoken signs an access token for local testing of /api/v1/users/me
// with the same secret, issuer and audience the API verifies against.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"urbanvibe-api/internal/core/auth"
	"urbanvibe-api/internal/core/config"
)

func main() {
	var (
		sub   = flag.String("sub", "", "user id (uuid) placed in the sub claim")
		email = flag.String("email", "", "email claim")
		ttl   = flag.Duration("ttl", time.Hour, "token lifetime")
	)
	flag.Parse()

	_ = godotenv.Load()
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		fail("config: %v", err)
	}
	if cfg.JWT.Secret == "" {
		fail("jwt secret is empty; set APP_JWT_SECRET or SUPABASE_JWT_SECRET")
	}
	uid, err := uuid.Parse(*sub)
	if err != nil {
		fail("-sub must be a uuid: %v", err)
	}

	j := &auth.JWTer{
		Secret:   []byte(cfg.JWT.Secret),
		Issuer:   cfg.JWT.Issuer,
		Audience: cfg.JWT.Audience,
		TTL:      *ttl,
	}
	tok, err := j.Issue(uid, *email)
	if err != nil {
		fail("sign: %v", err)
	}
	fmt.Println(tok)
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "devtoken: "+format+"\n", args...)
	os.Exit(1)
}
