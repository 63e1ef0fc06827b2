//go:build ignore

package main

import (
	"context"
	"fmt"
	"os"

	"lys-checkout/internal/config"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
)

// Verifies the configured database is reachable.
//
//	go run scripts/check_db.go
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, cfg.Database.ConnectionString())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close(ctx)

	var dbName string
	err = conn.QueryRow(ctx, "SELECT current_database()").Scan(&dbName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "QueryRow failed: %v\n", err)
		os.Exit(1)
	}

	var brands int
	if err := conn.QueryRow(ctx, "SELECT count(*) FROM brands").Scan(&brands); err != nil {
		fmt.Fprintf(os.Stderr, "Schema check failed (run migrations?): %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Successfully connected to database %s (%d brands)\n", dbName, brands)
}
