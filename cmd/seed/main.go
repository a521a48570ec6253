package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/wheelyhq/dealer-portal/config"
	"github.com/wheelyhq/dealer-portal/internal/domain/entity"
)

// Provisioning tool: inserts a user with a fixed role and optional
// dealer linkage. Username and password stay NULL until the user
// completes self-service signup.
func main() {
	email := flag.String("email", "", "email of the user to provision")
	role := flag.String("role", entity.RoleDealer, "role: admin, dealer or sales_rep")
	dealerID := flag.Int64("dealer-id", 0, "dealer to link the user to (0 = none)")
	flag.Parse()

	if *email == "" {
		log.Fatal("-email is required")
	}
	switch strings.ToLower(*role) {
	case entity.RoleAdmin, entity.RoleDealer, entity.RoleSalesRep:
	default:
		log.Fatalf("unknown role %q", *role)
	}

	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	var dealer interface{}
	if *dealerID != 0 {
		dealer = *dealerID
	}

	var id int64
	err = db.QueryRow(`
		INSERT INTO users (email, role, dealer_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET dealer_id = EXCLUDED.dealer_id
		RETURNING user_id
	`, *email, strings.ToLower(*role), dealer).Scan(&id)
	if err != nil {
		log.Fatalf("failed to provision user: %v", err)
	}
	fmt.Printf("provisioned user: user_id=%d email=%s role=%s\n", id, *email, strings.ToLower(*role))
}
