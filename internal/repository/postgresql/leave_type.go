package postgresql

import (
	"context"
	"errors"

	"github.com/campus-erp/leave-backend-go/internal/domain/leave"
	"github.com/campus-erp/leave-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveTypeRepositoryImpl struct {
	db *database.DB
}

func NewLeaveTypeRepository(db *database.DB) leave.LeaveTypeRepository {
	return &leaveTypeRepositoryImpl{db: db}
}

func (r *leaveTypeRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, code, description, restricted, accrual_method,
			   monthly_accrual, created_at, updated_at
		FROM leave_types
		WHERE id = $1
	`

	var lt leave.LeaveType
	err := q.QueryRow(ctx, query, id).Scan(
		&lt.ID, &lt.Name, &lt.Code, &lt.Description, &lt.Restricted,
		&lt.AccrualMethod, &lt.MonthlyAccrual, &lt.CreatedAt, &lt.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
		}
		return leave.LeaveType{}, err
	}

	return lt, nil
}

func (r *leaveTypeRepositoryImpl) List(ctx context.Context) ([]leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, code, description, restricted, accrual_method,
			   monthly_accrual, created_at, updated_at
		FROM leave_types
		ORDER BY code
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanLeaveTypes(rows)
}

func (r *leaveTypeRepositoryImpl) ListMonthlyAccrual(ctx context.Context) ([]leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, code, description, restricted, accrual_method,
			   monthly_accrual, created_at, updated_at
		FROM leave_types
		WHERE accrual_method = 'monthly'
		ORDER BY code
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanLeaveTypes(rows)
}

func scanLeaveTypes(rows pgx.Rows) ([]leave.LeaveType, error) {
	var types []leave.LeaveType
	for rows.Next() {
		var lt leave.LeaveType
		err := rows.Scan(
			&lt.ID, &lt.Name, &lt.Code, &lt.Description, &lt.Restricted,
			&lt.AccrualMethod, &lt.MonthlyAccrual, &lt.CreatedAt, &lt.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		types = append(types, lt)
	}
	return types, rows.Err()
}

type leaveTypeRuleRepositoryImpl struct {
	db *database.DB
}

func NewLeaveTypeRuleRepository(db *database.DB) leave.LeaveTypeRuleRepository {
	return &leaveTypeRuleRepositoryImpl{db: db}
}

func (r *leaveTypeRuleRepositoryImpl) GetByTypeAndNature(ctx context.Context, leaveTypeID, nature string) (leave.LeaveTypeRule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, leave_type_id, nature, off_covered
		FROM leave_type_rules
		WHERE leave_type_id = $1 AND nature = $2
	`

	var rule leave.LeaveTypeRule
	err := q.QueryRow(ctx, query, leaveTypeID, nature).Scan(&rule.ID, &rule.LeaveTypeID, &rule.Nature, &rule.OffCovered)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveTypeRule{}, leave.ErrRuleNotFound
		}
		return leave.LeaveTypeRule{}, err
	}

	return rule, nil
}

func (r *leaveTypeRuleRepositoryImpl) GetByType(ctx context.Context, leaveTypeID string) (leave.LeaveTypeRule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, leave_type_id, nature, off_covered
		FROM leave_type_rules
		WHERE leave_type_id = $1 AND nature IS NULL
	`

	var rule leave.LeaveTypeRule
	err := q.QueryRow(ctx, query, leaveTypeID).Scan(&rule.ID, &rule.LeaveTypeID, &rule.Nature, &rule.OffCovered)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveTypeRule{}, leave.ErrRuleNotFound
		}
		return leave.LeaveTypeRule{}, err
	}

	return rule, nil
}
