// migrate aplica las migraciones goose embebidas en el binario.
//
// Uso: go run ./cmd/migrate -cmd=up|down|status|version|create [-version=...] [-name=...]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/jhoicas/Farmacia-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Farmacia-api/pkg/config"
	"github.com/jhoicas/Farmacia-api/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cmd := flag.String("cmd", "up", "comando: up|down|status|version|create")
	name := flag.String("name", "", "nombre de la migración (create)")
	version := flag.String("version", "", "versión destino YYYYMMDDHHMMSS (version)")
	flag.Parse()

	// create no necesita base de datos.
	if *cmd == "create" {
		if *name == "" {
			fmt.Fprintln(os.Stderr, "falta -name para create")
			os.Exit(1)
		}
		path, err := postgres.CreateSQLMigration(postgres.SourceMigrationsDir, *name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "crear migración: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("migración creada:", path)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, App: "migrate"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	db := postgres.OpenDB(pool)
	defer db.Close()

	switch *cmd {
	case "up", "down", "status":
		err = postgres.Migrate(ctx, db, *cmd)
	case "version":
		if *version == "" {
			fmt.Fprintln(os.Stderr, "falta -version para version")
			os.Exit(1)
		}
		err = postgres.MigrateToVersion(ctx, db, *version)
	default:
		fmt.Fprintln(os.Stderr, "valor de -cmd desconocido:", *cmd)
		os.Exit(1)
	}
	if err != nil {
		log.Fatal().Err(err).Str("cmd", *cmd).Msg("migración fallida")
	}
	log.Info().Str("cmd", *cmd).Msg("migración completada")
}
