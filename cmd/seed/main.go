// seed crea los datos iniciales: usuario admin, su empleado y las categorías base.
// Se puede ejecutar varias veces; lo que ya existe se omite.
//
// Uso: go run ./cmd/seed [-categories=categorias.txt] [-latin1]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/jhoicas/Farmacia-api/internal/application/auth"
	"github.com/jhoicas/Farmacia-api/internal/application/usecase"
	"github.com/jhoicas/Farmacia-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Farmacia-api/pkg/config"
	"github.com/jhoicas/Farmacia-api/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	categoriesPath := flag.String("categories", "", "archivo con una categoría por línea")
	latin1 := flag.Bool("latin1", false, "el archivo de categorías está en ISO-8859-1")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, App: "seed"})

	categories := defaultCategories
	if *categoriesPath != "" {
		f, err := os.Open(*categoriesPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", *categoriesPath).Msg("abrir archivo de categorías")
		}
		categories, err = readCategories(f, *latin1)
		f.Close()
		if err != nil {
			log.Fatal().Err(err).Msg("leer categorías")
		}
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	s := &seeder{
		auth: auth.NewAuthUseCase(postgres.NewUserRepository(pool), auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		}),
		employees:  usecase.NewEmployeeUseCase(postgres.NewEmployeeRepository(pool)),
		categories: usecase.NewCategoryUseCase(postgres.NewCategoryRepository(pool)),
		log:        log,
	}
	if _, err := s.run(ctx, cfg.Seed, categories); err != nil {
		log.Fatal().Err(err).Msg("seed fallido")
	}
}
