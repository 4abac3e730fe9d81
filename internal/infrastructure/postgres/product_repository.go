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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, name, description, presentation, expiration_date, supplier_id, category_id,
	image_url, stock, price, created_at, updated_at`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var supplierID, categoryID *string
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Presentation, &p.ExpirationDate,
		&supplierID, &categoryID, &p.ImageURL, &p.Stock, &p.Price, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.SupplierID = derefString(supplierID)
	p.CategoryID = derefString(categoryID)
	return &p, nil
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.Name, product.Description, product.Presentation, product.ExpirationDate,
		nullIfEmpty(product.SupplierID), nullIfEmpty(product.CategoryID), product.ImageURL,
		product.Stock, product.Price, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("proveedor o categoría inexistente: %w", domain.ErrInvalidInput)
		}
		if isNumericOverflow(err) {
			return fmt.Errorf("monto fuera de rango: %w", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Update actualiza un producto existente. No modifica Stock (se maneja vía UpdateStock).
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, description = $3, presentation = $4, expiration_date = $5,
			supplier_id = $6, category_id = $7, image_url = $8, price = $9, updated_at = $10
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		product.ID, product.Name, product.Description, product.Presentation, product.ExpirationDate,
		nullIfEmpty(product.SupplierID), nullIfEmpty(product.CategoryID), product.ImageURL,
		product.Price, product.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("proveedor o categoría inexistente: %w", domain.ErrInvalidInput)
		}
		if isNumericOverflow(err) {
			return fmt.Errorf("monto fuera de rango: %w", domain.ErrInvalidInput)
		}
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// List lista productos con paginación; filtra por categoría si se indica.
func (r *ProductRepo) List(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	limit, offset := normalizePage(filter.Limit, filter.Offset)
	query := `
		SELECT ` + productColumns + ` FROM products
		WHERE ($1::uuid IS NULL OR category_id = $1::uuid)
		ORDER BY name ASC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, nullIfEmpty(filter.CategoryID), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Delete elimina un producto por ID. Falla si tiene líneas de documentos asociadas.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("el producto tiene documentos asociados: %w", domain.ErrConflict)
		}
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// GetStockForUpdate bloquea las filas de los productos pedidos y devuelve su stock.
// Los ids ausentes simplemente no aparecen en el mapa. El ORDER BY fija el orden
// de adquisición de locks.
func (r *ProductRepo) GetStockForUpdate(ctx context.Context, ids []string) (map[string]int64, error) {
	levels := make(map[string]int64, len(ids))
	if len(ids) == 0 {
		return levels, nil
	}
	rows, err := r.q.Query(ctx,
		`SELECT id, stock FROM products WHERE id = ANY($1::uuid[]) ORDER BY id FOR UPDATE`, ids)
	if err != nil {
		return nil, fmt.Errorf("lock products: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		var stock int64
		if err := rows.Scan(&id, &stock); err != nil {
			return nil, fmt.Errorf("scan product stock: %w", err)
		}
		levels[id] = stock
	}
	return levels, rows.Err()
}

// UpdateStock fija el stock de un producto.
func (r *ProductRepo) UpdateStock(ctx context.Context, id string, stock int64) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE products SET stock = $2, updated_at = now() WHERE id = $1`, id, stock)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("stock negativo para %s: %w", id, domain.ErrInsufficientStock)
		}
		return fmt.Errorf("update product stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return &domain.ProductNotFoundError{ProductID: id}
	}
	return nil
}
