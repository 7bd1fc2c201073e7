package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/campus-erp/leave-backend-go/internal/domain/leave"
	"github.com/campus-erp/leave-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type leaveTakenRepositoryImpl struct {
	db *database.DB
}

func NewLeaveTakenRepository(db *database.DB) leave.LeaveTakenRepository {
	return &leaveTakenRepositoryImpl{db: db}
}

func (r *leaveTakenRepositoryImpl) Create(ctx context.Context, taken leave.LeaveTaken, dates []time.Time) (leave.LeaveTaken, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_taken (id, request_id, employee_id, leave_type_id, year, days, cancelled, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, FALSE, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	taken.ID = uuid.NewString()
	err := q.QueryRow(ctx, query,
		taken.ID, taken.RequestID, taken.EmployeeID, taken.LeaveTypeID, taken.Year, taken.Days,
	).Scan(&taken.ID, &taken.CreatedAt, &taken.UpdatedAt)
	if err != nil {
		return leave.LeaveTaken{}, fmt.Errorf("failed to create leave taken record: %w", err)
	}

	for _, date := range dates {
		_, err := q.Exec(ctx,
			`INSERT INTO leave_taken_days (id, taken_id, date) VALUES ($1, $2, $3)`,
			uuid.NewString(), taken.ID, date,
		)
		if err != nil {
			return leave.LeaveTaken{}, fmt.Errorf("failed to create leave taken day: %w", err)
		}
	}

	return taken, nil
}

func (r *leaveTakenRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveTaken, error) {
	return r.getByID(ctx, id, false)
}

func (r *leaveTakenRepositoryImpl) GetByIDForUpdate(ctx context.Context, id string) (leave.LeaveTaken, error) {
	return r.getByID(ctx, id, true)
}

func (r *leaveTakenRepositoryImpl) getByID(ctx context.Context, id string, forUpdate bool) (leave.LeaveTaken, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, request_id, employee_id, leave_type_id, year, days, cancelled, created_at, updated_at
		FROM leave_taken
		WHERE id = $1
	`
	if forUpdate {
		query += " FOR UPDATE"
	}

	var taken leave.LeaveTaken
	err := q.QueryRow(ctx, query, id).Scan(
		&taken.ID, &taken.RequestID, &taken.EmployeeID, &taken.LeaveTypeID,
		&taken.Year, &taken.Days, &taken.Cancelled, &taken.CreatedAt, &taken.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveTaken{}, leave.ErrTakenRecordNotFound
		}
		return leave.LeaveTaken{}, err
	}

	return taken, nil
}

func (r *leaveTakenRepositoryImpl) UpdateDays(ctx context.Context, id string, days float64) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE leave_taken SET days = $2, updated_at = NOW() WHERE id = $1`,
		id, days,
	)
	if err != nil {
		return fmt.Errorf("failed to update leave taken days: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrTakenRecordNotFound
	}

	return nil
}

func (r *leaveTakenRepositoryImpl) MarkCancelled(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE leave_taken SET cancelled = TRUE, updated_at = NOW() WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to mark leave taken cancelled: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrTakenRecordNotFound
	}

	return nil
}

func (r *leaveTakenRepositoryImpl) DeleteDayRows(ctx context.Context, takenID string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `DELETE FROM leave_taken_days WHERE taken_id = $1`, takenID)
	if err != nil {
		return fmt.Errorf("failed to delete leave taken days: %w", err)
	}

	return nil
}

func (r *leaveTakenRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, year int) ([]leave.LeaveTaken, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, request_id, employee_id, leave_type_id, year, days, cancelled, created_at, updated_at
		FROM leave_taken
		WHERE employee_id = $1 AND year = $2
		ORDER BY created_at DESC
	`

	rows, err := q.Query(ctx, query, employeeID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []leave.LeaveTaken
	for rows.Next() {
		var taken leave.LeaveTaken
		err := rows.Scan(
			&taken.ID, &taken.RequestID, &taken.EmployeeID, &taken.LeaveTypeID,
			&taken.Year, &taken.Days, &taken.Cancelled, &taken.CreatedAt, &taken.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		records = append(records, taken)
	}

	return records, rows.Err()
}
