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

type leaveAssignmentRepositoryImpl struct {
	db *database.DB
}

func NewLeaveAssignmentRepository(db *database.DB) leave.LeaveAssignmentRepository {
	return &leaveAssignmentRepositoryImpl{db: db}
}

func (r *leaveAssignmentRepositoryImpl) Create(ctx context.Context, a leave.LeaveAssignment) (leave.LeaveAssignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_assignments (id, employee_id, leave_type_id, year, assigned, availed, adjusted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	a.ID = uuid.NewString()
	err := q.QueryRow(ctx, query,
		a.ID, a.EmployeeID, a.LeaveTypeID, a.Year, a.Assigned, a.Availed, a.Adjusted,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return leave.LeaveAssignment{}, fmt.Errorf("failed to create leave assignment: %w", err)
	}

	return a, nil
}

func (r *leaveAssignmentRepositoryImpl) GetByEmployeeTypeYear(ctx context.Context, employeeID, leaveTypeID string, year int) (leave.LeaveAssignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, leave_type_id, year, assigned, availed, adjusted, created_at, updated_at
		FROM leave_assignments
		WHERE employee_id = $1 AND leave_type_id = $2 AND year = $3
	`

	var a leave.LeaveAssignment
	err := q.QueryRow(ctx, query, employeeID, leaveTypeID, year).Scan(
		&a.ID, &a.EmployeeID, &a.LeaveTypeID, &a.Year,
		&a.Assigned, &a.Availed, &a.Adjusted, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveAssignment{}, leave.ErrAssignmentNotFound
		}
		return leave.LeaveAssignment{}, err
	}

	return a, nil
}

func (r *leaveAssignmentRepositoryImpl) ListByEmployeeYear(ctx context.Context, employeeID string, year int) ([]leave.LeaveAssignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, leave_type_id, year, assigned, availed, adjusted, created_at, updated_at
		FROM leave_assignments
		WHERE employee_id = $1 AND year = $2
		ORDER BY leave_type_id
	`

	rows, err := q.Query(ctx, query, employeeID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []leave.LeaveAssignment
	for rows.Next() {
		var a leave.LeaveAssignment
		err := rows.Scan(
			&a.ID, &a.EmployeeID, &a.LeaveTypeID, &a.Year,
			&a.Assigned, &a.Availed, &a.Adjusted, &a.CreatedAt, &a.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}

	return assignments, rows.Err()
}

func (r *leaveAssignmentRepositoryImpl) ApplyDelta(ctx context.Context, employeeID, leaveTypeID string, year int, availedDelta, adjustedDelta float64) error {
	q := GetQuerier(ctx, r.db)

	// Single atomic increment; concurrent approvals serialize on the row.
	query := `
		UPDATE leave_assignments
		SET availed = availed + $4, adjusted = adjusted + $5, updated_at = NOW()
		WHERE employee_id = $1 AND leave_type_id = $2 AND year = $3
	`

	tag, err := q.Exec(ctx, query, employeeID, leaveTypeID, year, availedDelta, adjustedDelta)
	if err != nil {
		return fmt.Errorf("failed to apply assignment delta: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrAssignmentNotFound
	}

	return nil
}

func (r *leaveAssignmentRepositoryImpl) AddAssigned(ctx context.Context, employeeID, leaveTypeID string, year int, delta float64) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_assignments (id, employee_id, leave_type_id, year, assigned, availed, adjusted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, 0, 0, NOW(), NOW())
		ON CONFLICT (employee_id, leave_type_id, year)
		DO UPDATE SET assigned = leave_assignments.assigned + EXCLUDED.assigned, updated_at = NOW()
	`

	_, err := q.Exec(ctx, query, uuid.NewString(), employeeID, leaveTypeID, year, delta)
	if err != nil {
		return fmt.Errorf("failed to add assigned days: %w", err)
	}

	return nil
}

func (r *leaveAssignmentRepositoryImpl) TryStartAccrual(ctx context.Context, year int, month time.Month) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_accrual_runs (id, year, month, started_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (year, month) DO NOTHING
	`

	tag, err := q.Exec(ctx, query, uuid.NewString(), year, int(month))
	if err != nil {
		return false, fmt.Errorf("failed to claim accrual run: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}
