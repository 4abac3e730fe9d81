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

var _ repository.MedicineRepository = (*MedicineRepo)(nil)

// MedicineRepo implementación de MedicineRepository (usable con pool o tx).
type MedicineRepo struct {
	q Querier
}

// NewMedicineRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMedicineRepository(q Querier) *MedicineRepo {
	return &MedicineRepo{q: q}
}

func (r *MedicineRepo) Create(ctx context.Context, m *entity.Medicine) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO medicines (id, product_id, prescription_required, created_at)
		VALUES ($1, $2, $3, $4)`,
		m.ID, m.ProductID, m.PrescriptionRequired, m.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrProductNotFound
		}
		return fmt.Errorf("insert medicine: %w", err)
	}
	return nil
}

func (r *MedicineRepo) GetByID(ctx context.Context, id string) (*entity.Medicine, error) {
	var m entity.Medicine
	err := r.q.QueryRow(ctx,
		`SELECT id, product_id, prescription_required, created_at FROM medicines WHERE id = $1`, id,
	).Scan(&m.ID, &m.ProductID, &m.PrescriptionRequired, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get medicine: %w", err)
	}
	return &m, nil
}

func (r *MedicineRepo) Update(ctx context.Context, m *entity.Medicine) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE medicines SET product_id = $2, prescription_required = $3 WHERE id = $1`,
		m.ID, m.ProductID, m.PrescriptionRequired)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrProductNotFound
		}
		return fmt.Errorf("update medicine: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MedicineRepo) List(ctx context.Context, limit, offset int) ([]*entity.Medicine, error) {
	limit, offset = normalizePage(limit, offset)
	rows, err := r.q.Query(ctx, `
		SELECT id, product_id, prescription_required, created_at
		FROM medicines ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list medicines: %w", err)
	}
	defer rows.Close()
	var list []*entity.Medicine
	for rows.Next() {
		var m entity.Medicine
		if err := rows.Scan(&m.ID, &m.ProductID, &m.PrescriptionRequired, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan medicine: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

func (r *MedicineRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM medicines WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete medicine: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
