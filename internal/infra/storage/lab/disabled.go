package lab

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-LabBookingService/internal/domain"
	"github.com/m04kA/SMC-LabBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-LabBookingService/pkg/psqlbuilder"
)

var disabledColumns = []string{"id", "lab_id", "disabled_date", "reason", "created_at"}

// GetDisabled возвращает отключение лаборатории на дату
func (r *Repository) GetDisabled(ctx context.Context, labID int64, date time.Time) (*domain.DisabledLab, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(disabledColumns...).
		From("disabled_labs").
		Where(squirrel.Eq{"lab_id": labID}).
		Where(squirrel.Eq{"disabled_date": date}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetDisabled - build select query: %v", ErrBuildQuery, err)
	}

	var d domain.DisabledLab
	err = executor.QueryRowContext(ctx, query, args...).Scan(&d.ID, &d.LabID, &d.Date, &d.Reason, &d.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDisabledNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetDisabled - scan row: %v", ErrScanRow, err)
	}

	return &d, nil
}

// GetDisabledByDate возвращает все отключения на дату по ID лаборатории
func (r *Repository) GetDisabledByDate(ctx context.Context, date time.Time) (map[int64]*domain.DisabledLab, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(disabledColumns...).
		From("disabled_labs").
		Where(squirrel.Eq{"disabled_date": date}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetDisabledByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetDisabledByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make(map[int64]*domain.DisabledLab)
	for rows.Next() {
		var d domain.DisabledLab
		if err := rows.Scan(&d.ID, &d.LabID, &d.Date, &d.Reason, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: GetDisabledByDate - scan row: %v", ErrScanRow, err)
		}
		result[d.LabID] = &d
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetDisabledByDate - rows iteration: %v", ErrScanRow, err)
	}

	return result, nil
}

// Disable отключает лабораторию на дату. Повторный вызов обновляет причину.
func (r *Repository) Disable(ctx context.Context, disabled *domain.DisabledLab) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("disabled_labs").
		Columns("lab_id", "disabled_date", "reason", "created_at").
		Values(disabled.LabID, disabled.Date, disabled.Reason, disabled.CreatedAt).
		Suffix("ON CONFLICT (lab_id, disabled_date) DO UPDATE SET reason = EXCLUDED.reason RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Disable - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&disabled.ID); err != nil {
		return fmt.Errorf("%w: Disable - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// Enable снимает отключение лаборатории на дату
func (r *Repository) Enable(ctx context.Context, labID int64, date time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("disabled_labs").
		Where(squirrel.Eq{"lab_id": labID}).
		Where(squirrel.Eq{"disabled_date": date}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Enable - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Enable - execute delete: %v", ErrExecQuery, err)
	}

	return expectAffected(result, "Enable", ErrDisabledNotFound)
}
