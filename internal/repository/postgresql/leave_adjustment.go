package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/campus-erp/leave-backend-go/internal/domain/leave"
	"github.com/campus-erp/leave-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type leaveAdjustmentRepositoryImpl struct {
	db *database.DB
}

func NewLeaveAdjustmentRepository(db *database.DB) leave.LeaveAdjustmentRepository {
	return &leaveAdjustmentRepositoryImpl{db: db}
}

func (r *leaveAdjustmentRepositoryImpl) Create(ctx context.Context, adj leave.LeaveAdjustment) (leave.LeaveAdjustment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_adjustments (id, taken_id, proposed_days, cancellation, reason, status, requested_by, requested_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id, requested_at
	`

	adj.ID = uuid.NewString()
	err := q.QueryRow(ctx, query,
		adj.ID, adj.TakenID, adj.ProposedDays, adj.Cancellation, adj.Reason, adj.Status, adj.RequestedBy,
	).Scan(&adj.ID, &adj.RequestedAt)
	if err != nil {
		return leave.LeaveAdjustment{}, fmt.Errorf("failed to create leave adjustment: %w", err)
	}

	return adj, nil
}

func (r *leaveAdjustmentRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveAdjustment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, taken_id, proposed_days, cancellation, reason, status, requested_by, requested_at, responder_id, responded_at
		FROM leave_adjustments
		WHERE id = $1
	`

	adj, err := scanLeaveAdjustment(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveAdjustment{}, leave.ErrAdjustmentNotFound
		}
		return leave.LeaveAdjustment{}, err
	}

	return adj, nil
}

func (r *leaveAdjustmentRepositoryImpl) Decide(ctx context.Context, id, responderID string, status leave.AdjustmentStatus) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_adjustments
		SET status = $3, responder_id = $2, responded_at = NOW()
		WHERE id = $1 AND status = 'submitted'
	`

	tag, err := q.Exec(ctx, query, id, responderID, status)
	if err != nil {
		return false, fmt.Errorf("failed to decide leave adjustment %s: %w", id, err)
	}

	return tag.RowsAffected() == 1, nil
}

func (r *leaveAdjustmentRepositoryImpl) ListByRequester(ctx context.Context, requesterID string) ([]leave.LeaveAdjustment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, taken_id, proposed_days, cancellation, reason, status, requested_by, requested_at, responder_id, responded_at
		FROM leave_adjustments
		WHERE requested_by = $1
		ORDER BY requested_at DESC
	`

	rows, err := q.Query(ctx, query, requesterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectLeaveAdjustments(rows)
}

func (r *leaveAdjustmentRepositoryImpl) ListPendingForOfficer(ctx context.Context, officerID string) ([]leave.LeaveAdjustment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT la.id, la.taken_id, la.proposed_days, la.cancellation, la.reason, la.status, la.requested_by, la.requested_at, la.responder_id, la.responded_at
		FROM leave_adjustments la
		JOIN leave_taken lt ON la.taken_id = lt.id
		JOIN leave_requests lr ON lt.request_id = lr.id
		WHERE la.status = 'submitted' AND lr.reporting_officer_id = $1
		ORDER BY la.requested_at
	`

	rows, err := q.Query(ctx, query, officerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectLeaveAdjustments(rows)
}

func scanLeaveAdjustment(row pgx.Row) (leave.LeaveAdjustment, error) {
	var adj leave.LeaveAdjustment
	err := row.Scan(
		&adj.ID, &adj.TakenID, &adj.ProposedDays, &adj.Cancellation,
		&adj.Reason, &adj.Status, &adj.RequestedBy, &adj.RequestedAt,
		&adj.ResponderID, &adj.RespondedAt,
	)
	return adj, err
}

func collectLeaveAdjustments(rows pgx.Rows) ([]leave.LeaveAdjustment, error) {
	var adjustments []leave.LeaveAdjustment
	for rows.Next() {
		adj, err := scanLeaveAdjustment(rows)
		if err != nil {
			return nil, err
		}
		adjustments = append(adjustments, adj)
	}
	return adjustments, rows.Err()
}
