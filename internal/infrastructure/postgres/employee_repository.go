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

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

// EmployeeRepo persiste empleados junto con su fila en persons.
// Create y Update ejecutan dos sentencias; el caller decide si van en una tx.
type EmployeeRepo struct {
	q Querier
}

// NewEmployeeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEmployeeRepository(q Querier) *EmployeeRepo {
	return &EmployeeRepo{q: q}
}

const employeeSelect = `
	SELECT e.id, e.position, e.hire_date, e.salary, e.role, e.created_at, e.updated_at,
		p.id, p.first_name, p.last_names, p.address, p.email, p.phone, p.identification
	FROM employees e
	JOIN persons p ON p.id = e.person_id`

func scanEmployee(row pgx.Row) (*entity.Employee, error) {
	var e entity.Employee
	if err := row.Scan(&e.ID, &e.Position, &e.HireDate, &e.Salary, &e.Role, &e.CreatedAt, &e.UpdatedAt,
		&e.Person.ID, &e.Person.FirstName, &e.Person.LastNames, &e.Person.Address, &e.Person.Email,
		&e.Person.Phone, &e.Person.Identification); err != nil {
		return nil, err
	}
	return &e, nil
}

// Create inserta persona y empleado.
func (r *EmployeeRepo) Create(ctx context.Context, e *entity.Employee) error {
	p := e.Person
	_, err := r.q.Exec(ctx, `
		INSERT INTO persons (id, first_name, last_names, address, email, phone, identification)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.FirstName, p.LastNames, p.Address, p.Email, p.Phone, p.Identification)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert person: %w", err)
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO employees (id, person_id, position, hire_date, salary, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		e.ID, p.ID, e.Position, e.HireDate, e.Salary, e.Role, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert employee: %w", err)
	}
	return nil
}

// GetByID obtiene un empleado con su persona.
func (r *EmployeeRepo) GetByID(ctx context.Context, id string) (*entity.Employee, error) {
	return r.getOne(ctx, employeeSelect+` WHERE e.id = $1`, id)
}

// GetByIdentification busca por documento de identidad de la persona.
func (r *EmployeeRepo) GetByIdentification(ctx context.Context, identification string) (*entity.Employee, error) {
	return r.getOne(ctx, employeeSelect+` WHERE p.identification = $1`, identification)
}

func (r *EmployeeRepo) getOne(ctx context.Context, query, arg string) (*entity.Employee, error) {
	e, err := scanEmployee(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return e, nil
}

// Update actualiza persona y empleado.
func (r *EmployeeRepo) Update(ctx context.Context, e *entity.Employee) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE employees SET position = $2, hire_date = $3, salary = $4, role = $5, updated_at = $6
		WHERE id = $1`,
		e.ID, e.Position, e.HireDate, e.Salary, e.Role, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update employee: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	p := e.Person
	_, err = r.q.Exec(ctx, `
		UPDATE persons SET first_name = $2, last_names = $3, address = $4, email = $5, phone = $6, identification = $7
		WHERE id = $1`,
		p.ID, p.FirstName, p.LastNames, p.Address, p.Email, p.Phone, p.Identification)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update person: %w", err)
	}
	return nil
}

// List lista empleados con paginación.
func (r *EmployeeRepo) List(ctx context.Context, limit, offset int) ([]*entity.Employee, error) {
	limit, offset = normalizePage(limit, offset)
	rows, err := r.q.Query(ctx, employeeSelect+` ORDER BY p.last_names, p.first_name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()
	var list []*entity.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// Delete elimina el empleado y su persona (la persona arrastra al empleado por cascada).
func (r *EmployeeRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx,
		`DELETE FROM persons WHERE id = (SELECT person_id FROM employees WHERE id = $1)`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("el empleado tiene facturas: %w", domain.ErrConflict)
		}
		return fmt.Errorf("delete employee: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
