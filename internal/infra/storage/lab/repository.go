package lab

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-LabBookingService/internal/domain"
	"github.com/m04kA/SMC-LabBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-LabBookingService/pkg/psqlbuilder"
)

// uniqueViolation код ошибки PostgreSQL для нарушения уникальности
const uniqueViolation = "23505"

var labColumns = []string{"id", "name", "capacity", "equipment", "created_at", "updated_at"}

// Repository репозиторий лабораторий, их шаблонов доступности,
// отключений по датам и назначенных ассистентов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория лабораторий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает лабораторию
func (r *Repository) Create(ctx context.Context, lab *domain.Lab) (*domain.Lab, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("labs").
		Columns("name", "capacity", "equipment", "created_at").
		Values(lab.Name, lab.Capacity, pq.StringArray(lab.Equipment), lab.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&lab.ID); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateLab
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return lab, nil
}

// GetByID получает лабораторию по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Lab, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByName получает лабораторию по имени
func (r *Repository) GetByName(ctx context.Context, name string) (*domain.Lab, error) {
	return r.getOne(ctx, "GetByName", squirrel.Eq{"name": name})
}

// List возвращает все лаборатории, отсортированные по имени
func (r *Repository) List(ctx context.Context) ([]*domain.Lab, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(labColumns...).
		From("labs").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	labs := make([]*domain.Lab, 0)
	for rows.Next() {
		lab, err := scanLab(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan lab: %v", ErrScanRow, err)
		}
		labs = append(labs, lab)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows iteration: %v", ErrScanRow, err)
	}

	return labs, nil
}

// Update обновляет имя, вместимость и оборудование лаборатории
func (r *Repository) Update(ctx context.Context, lab *domain.Lab) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("labs").
		Set("name", lab.Name).
		Set("capacity", lab.Capacity).
		Set("equipment", pq.StringArray(lab.Equipment)).
		Set("updated_at", lab.UpdatedAt).
		Where(squirrel.Eq{"id": lab.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateLab
		}
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	return expectAffected(result, "Update", ErrLabNotFound)
}

// Delete удаляет лабораторию. Окна доступности, отключения
// и назначения ассистентов удаляются каскадно.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("labs").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	return expectAffected(result, "Delete", ErrLabNotFound)
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Sqlizer) (*domain.Lab, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(labColumns...).
		From("labs").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	lab, err := scanLab(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLabNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan lab: %v", ErrScanRow, op, err)
	}

	return lab, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLab(row rowScanner) (*domain.Lab, error) {
	var (
		lab       domain.Lab
		equipment pq.StringArray
		updatedAt sql.NullTime
	)

	if err := row.Scan(&lab.ID, &lab.Name, &lab.Capacity, &equipment, &lab.CreatedAt, &updatedAt); err != nil {
		return nil, err
	}

	lab.Equipment = []string(equipment)
	if lab.Equipment == nil {
		lab.Equipment = make([]string, 0)
	}
	if updatedAt.Valid {
		t := updatedAt.Time
		lab.UpdatedAt = &t
	}

	return &lab, nil
}

func expectAffected(result sql.Result, op string, notFound error) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - rows affected: %v", ErrExecQuery, op, err)
	}
	if affected == 0 {
		return notFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
