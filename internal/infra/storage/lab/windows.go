package lab

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-LabBookingService/internal/domain"
	"github.com/m04kA/SMC-LabBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-LabBookingService/pkg/psqlbuilder"
)

var windowColumns = []string{"id", "lab_id", "day_of_week", "start_time", "end_time"}

// GetWindows возвращает окна доступности лаборатории на день недели
func (r *Repository) GetWindows(ctx context.Context, labID int64, weekday domain.Weekday) ([]domain.AvailabilityWindow, error) {
	builder := psqlbuilder.Select(windowColumns...).
		From("availability_slots").
		Where(squirrel.Eq{"lab_id": labID}).
		Where(squirrel.Eq{"day_of_week": string(weekday)}).
		OrderBy("start_time ASC", "id ASC")

	return r.queryWindows(ctx, "GetWindows", builder)
}

// GetWindowsByWeekday возвращает окна всех лабораторий на день недели,
// сгруппированные по ID лаборатории
func (r *Repository) GetWindowsByWeekday(ctx context.Context, weekday domain.Weekday) (map[int64][]domain.AvailabilityWindow, error) {
	builder := psqlbuilder.Select(windowColumns...).
		From("availability_slots").
		Where(squirrel.Eq{"day_of_week": string(weekday)}).
		OrderBy("lab_id ASC", "start_time ASC", "id ASC")

	windows, err := r.queryWindows(ctx, "GetWindowsByWeekday", builder)
	if err != nil {
		return nil, err
	}

	byLab := make(map[int64][]domain.AvailabilityWindow)
	for _, w := range windows {
		byLab[w.LabID] = append(byLab[w.LabID], w)
	}
	return byLab, nil
}

// AddWindow добавляет окно доступности. Дубликаты и пересечения допускаются.
func (r *Repository) AddWindow(ctx context.Context, window *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("availability_slots").
		Columns("lab_id", "day_of_week", "start_time", "end_time").
		Values(window.LabID, string(window.Weekday), window.StartTime, window.EndTime).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: AddWindow - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&window.ID); err != nil {
		return nil, fmt.Errorf("%w: AddWindow - execute insert: %v", ErrExecQuery, err)
	}

	return window, nil
}

// DeleteWindow удаляет окно доступности лаборатории
func (r *Repository) DeleteWindow(ctx context.Context, labID, windowID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("availability_slots").
		Where(squirrel.Eq{"id": windowID}).
		Where(squirrel.Eq{"lab_id": labID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteWindow - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteWindow - execute delete: %v", ErrExecQuery, err)
	}

	return expectAffected(result, "DeleteWindow", ErrWindowNotFound)
}

func (r *Repository) queryWindows(ctx context.Context, op string, builder squirrel.SelectBuilder) ([]domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	windows := make([]domain.AvailabilityWindow, 0)
	for rows.Next() {
		var w domain.AvailabilityWindow
		if err := rows.Scan(&w.ID, &w.LabID, &w.Weekday, &w.StartTime, &w.EndTime); err != nil {
			return nil, fmt.Errorf("%w: %s - scan window: %v", ErrScanRow, op, err)
		}
		windows = append(windows, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows iteration: %v", ErrScanRow, op, err)
	}

	return windows, nil
}
