// Command token mints an HS256 access token for calling the hall plan API
// when the staff identity service is not available.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/iliyamo/exam-hall-seating/internal/config"
	"github.com/iliyamo/exam-hall-seating/internal/model"
	"github.com/iliyamo/exam-hall-seating/internal/utils"
)

func main() {
	subject := flag.String("sub", "", "staff id placed in the sub claim")
	role := flag.String("role", model.RoleExamCell, "role claim: EXAM_CELL, INVIGILATOR or ADMIN")
	ttl := flag.Int("ttl", 60, "lifetime in minutes")
	envFile := flag.String("env", "", "dotenv file to read JWT_SECRET from")
	flag.Parse()

	if err := config.LoadDotEnv(*envFile); err != nil {
		log.Fatalf("token: %v", err)
	}
	switch *role {
	case model.RoleExamCell, model.RoleInvigilator, model.RoleAdmin:
	default:
		log.Fatalf("token: unknown role %q", *role)
	}
	if *subject == "" {
		log.Fatal("token: -sub is required")
	}

	tok, err := utils.NewAccessToken(os.Getenv("JWT_SECRET"), *subject, *role, *ttl)
	if err != nil {
		log.Fatalf("token: %v", err)
	}
	fmt.Println(tok.Token)
	fmt.Fprintf(os.Stderr, "expires %s\n", tok.Exp.Format("2006-01-02 15:04:05 MST"))
}
