package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Farmacia-api/internal/application/auth"
	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/application/usecase"
	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/pkg/config"
	"github.com/jhoicas/Farmacia-api/pkg/logger"
)

// defaultCategories se crean si no se pasa un archivo de categorías.
var defaultCategories = []string{
	"Analgésicos",
	"Antibióticos",
	"Antigripales",
	"Vitaminas y suplementos",
	"Cuidado personal",
}

// adminIdentification identifica al empleado que acompaña al usuario admin.
const adminIdentification = "ADMIN-001"

type seeder struct {
	auth       *auth.AuthUseCase
	employees  *usecase.EmployeeUseCase
	categories *usecase.CategoryUseCase
	log        *logger.Logger
}

// result cuenta lo creado y lo que ya existía.
type result struct {
	Created int
	Skipped int
}

func (r *result) add(err error) error {
	switch {
	case err == nil:
		r.Created++
		return nil
	case errors.Is(err, domain.ErrUserAlreadyExists), errors.Is(err, domain.ErrDuplicate):
		r.Skipped++
		return nil
	}
	return err
}

// run crea admin, empleado por defecto y categorías. Es idempotente.
func (s *seeder) run(ctx context.Context, cfg config.SeedConfig, categories []string) (result, error) {
	var res result
	if cfg.AdminPassword == "" {
		return res, errors.New("SEED_ADMIN_PASSWORD es obligatorio")
	}

	_, err := s.auth.RegisterUser(ctx, dto.RegisterRequest{
		Username: cfg.AdminUsername,
		Password: cfg.AdminPassword,
		Email:    cfg.AdminEmail,
		Name:     "Administrador",
		Role:     entity.RoleAdmin,
	})
	if err := res.add(err); err != nil {
		return res, fmt.Errorf("usuario admin: %w", err)
	}

	_, err = s.employees.Create(ctx, dto.EmployeeRequest{
		Person: dto.PersonRequest{
			FirstName:      "Administrador",
			Email:          cfg.AdminEmail,
			Identification: adminIdentification,
		},
		Position: "Administrador",
		Role:     entity.RoleAdmin,
	})
	if err := res.add(err); err != nil {
		return res, fmt.Errorf("empleado por defecto: %w", err)
	}

	for _, name := range categories {
		_, err := s.categories.Create(ctx, dto.CategoryRequest{Name: name})
		if err := res.add(err); err != nil {
			return res, fmt.Errorf("categoría %q: %w", name, err)
		}
	}

	s.log.Info().Int("created", res.Created).Int("skipped", res.Skipped).Msg("seed completado")
	return res, nil
}

// readCategories lee un nombre por línea; ignora líneas vacías y las que empiezan con #.
// Con latin1 decodifica el archivo como ISO-8859-1 (exportaciones de hojas de cálculo).
func readCategories(r io.Reader, latin1 bool) ([]string, error) {
	if latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("leer categorías: %w", err)
	}
	return out, nil
}
