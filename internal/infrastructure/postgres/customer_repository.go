package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

const customerColumns = `id, user_id, first_name, last_name, email, address, dni, registered_at, created_at, updated_at`

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	var userID *string
	if err := row.Scan(&c.ID, &userID, &c.FirstName, &c.LastName, &c.Email, &c.Address, &c.DNI,
		&c.RegisteredAt, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.UserID = derefString(userID)
	return &c, nil
}

// Create persiste un nuevo cliente. DNI duplicado -> ErrDuplicate.
func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	_, err := r.q.Exec(ctx, `INSERT INTO customers (`+customerColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		c.ID, nullIfEmpty(c.UserID), c.FirstName, c.LastName, c.Email, c.Address, c.DNI,
		c.RegisteredAt, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	return r.getOne(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id)
}

// GetByDNI obtiene un cliente por DNI.
func (r *CustomerRepo) GetByDNI(ctx context.Context, dni string) (*entity.Customer, error) {
	return r.getOne(ctx, `SELECT `+customerColumns+` FROM customers WHERE dni = $1`, dni)
}

func (r *CustomerRepo) getOne(ctx context.Context, query, arg string) (*entity.Customer, error) {
	c, err := scanCustomer(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

// List lista clientes ordenados por apellido con paginación.
func (r *CustomerRepo) List(ctx context.Context, limit, offset int) ([]*entity.Customer, error) {
	limit, offset = normalizePage(limit, offset)
	rows, err := r.q.Query(ctx, `SELECT `+customerColumns+` FROM customers
		ORDER BY last_name, first_name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Update actualiza los datos del cliente.
func (r *CustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE customers SET first_name = $2, last_name = $3, email = $4, address = $5, dni = $6, updated_at = $7
		WHERE id = $1`,
		c.ID, c.FirstName, c.LastName, c.Email, c.Address, c.DNI, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update customer: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un cliente. Falla con ErrConflict si tiene facturas.
func (r *CustomerRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("el cliente tiene facturas: %w", domain.ErrConflict)
		}
		return fmt.Errorf("delete customer: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
