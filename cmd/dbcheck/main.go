// One-off: prints the archived products table. Needs PG_DSN.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/JulianPasquale/fudo-rack/internal/repo"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

func main() {
	dsn := os.Getenv("PG_DSN")
	if dsn == "" {
		log.Fatal().Msg("PG_DSN is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("pg connect")
	}
	defer pool.Close()

	archive := repo.NewPGProductArchive(pool)
	products, err := archive.ListCompleted(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("list products")
	}

	fmt.Println("Archived products:", len(products))
	for _, p := range products {
		fmt.Printf(" - %s  %s  (%s)\n", p.ID, p.Name, p.CreatedAt.Format(time.RFC3339))
	}
}
