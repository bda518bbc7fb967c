// Aplica las migraciones embebidas contra la base configurada.
// Uso: go run ./cmd/migrate (lee DATABASE_URL / DB_* del entorno).
package main

import (
	"context"
	"io/fs"
	"sort"
	"time"

	"github.com/invorya/stockledger/internal/infrastructure/postgres"
	"github.com/invorya/stockledger/migrations"
	"github.com/invorya/stockledger/pkg/config"
	"github.com/invorya/stockledger/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	names, err := fs.Glob(migrations.FS, "*.sql")
	if err != nil {
		log.Fatal().Err(err).Msg("listar migraciones")
	}
	sort.Strings(names)

	for _, name := range names {
		sqlBytes, err := migrations.FS.ReadFile(name)
		if err != nil {
			log.Fatal().Err(err).Str("file", name).Msg("leer migración")
		}
		if _, err := pool.Exec(ctx, string(sqlBytes)); err != nil {
			log.Fatal().Err(err).Str("file", name).Msg("aplicar migración")
		}
		log.Info().Str("file", name).Msg("migración aplicada")
	}
	log.Info().Int("total", len(names)).Msg("migraciones completadas")
}
