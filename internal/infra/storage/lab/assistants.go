package lab

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-LabBookingService/internal/domain"
	"github.com/m04kA/SMC-LabBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-LabBookingService/pkg/psqlbuilder"
)

// AssignAssistant назначает ассистента на лабораторию
func (r *Repository) AssignAssistant(ctx context.Context, assignment *domain.LabAssistantAssignment) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("lab_assistant_assignments").
		Columns("lab_id", "assistant_college_id", "assigned_at").
		Values(assignment.LabID, assignment.AssistantID, assignment.AssignedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: AssignAssistant - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&assignment.ID); err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyAssigned
		}
		return fmt.Errorf("%w: AssignAssistant - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// AssignedLabIDs возвращает ID лабораторий, назначенных ассистенту
func (r *Repository) AssignedLabIDs(ctx context.Context, assistantID string) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("lab_id").
		From("lab_assistant_assignments").
		Where(squirrel.Eq{"assistant_college_id": assistantID}).
		OrderBy("lab_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: AssignedLabIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: AssignedLabIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: AssignedLabIDs - scan row: %v", ErrScanRow, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: AssignedLabIDs - rows iteration: %v", ErrScanRow, err)
	}

	return ids, nil
}

// IsAssigned проверяет, назначен ли ассистент на лабораторию
func (r *Repository) IsAssigned(ctx context.Context, labID int64, assistantID string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		Prefix("SELECT EXISTS (").
		From("lab_assistant_assignments").
		Where(squirrel.Eq{"lab_id": labID}).
		Where(squirrel.Eq{"assistant_college_id": assistantID}).
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: IsAssigned - build select query: %v", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: IsAssigned - scan row: %v", ErrScanRow, err)
	}

	return exists, nil
}
