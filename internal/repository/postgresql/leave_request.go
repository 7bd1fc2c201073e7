package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/campus-erp/leave-backend-go/internal/domain/leave"
	"github.com/campus-erp/leave-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const leaveRequestColumns = `
	lr.id, lr.requester_id, lr.employee_id, lr.leave_type_id,
	lr.from_date, lr.to_date, lr.station_from, lr.station_to,
	lr.short_leave, lr.short_leave_time, lr.days, lr.calendar_days,
	lr.reason, lr.contact_info, lr.status, lr.reporting_officer_id,
	lr.recommender_1, lr.recommender_2, lr.recommender_3,
	lr.recommended_by, lr.recommended_at,
	lr.responder_id, lr.responded_at, lr.response_comment,
	lr.created_by, lr.created_at, lr.updated_by, lr.updated_at`

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (
			id, requester_id, employee_id, leave_type_id,
			from_date, to_date, station_from, station_to,
			short_leave, short_leave_time, days, calendar_days,
			reason, contact_info, status, reporting_officer_id,
			recommender_1, recommender_2, recommender_3,
			created_by, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4,
			$5, $6, $7, $8,
			$9, $10, $11, $12,
			$13, $14, $15, $16,
			$17, $18, $19,
			$20, NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	request.ID = uuid.NewString()
	err := q.QueryRow(ctx, query,
		request.ID, request.RequesterID, request.EmployeeID, request.LeaveTypeID,
		request.FromDate, request.ToDate, request.StationFrom, request.StationTo,
		request.ShortLeave, request.ShortLeaveTime, request.Days, request.CalendarDays,
		request.Reason, request.ContactInfo, request.Status, request.ReportingOfficerID,
		request.Recommender1, request.Recommender2, request.Recommender3,
		request.CreatedBy,
	).Scan(&request.ID, &request.CreatedAt, &request.UpdatedAt)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	return request, nil
}

func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s,
			   lt.name AS leave_type_name,
			   e.full_name AS employee_name
		FROM leave_requests lr
		JOIN leave_types lt ON lr.leave_type_id = lt.id
		JOIN employees e ON lr.employee_id = e.id
		WHERE lr.id = $1
	`, leaveRequestColumns)

	req, err := scanLeaveRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, err
	}

	return req, nil
}

func (r *leaveRequestRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, filter leave.RequestFilter) ([]leave.LeaveRequest, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClauses := []string{"lr.employee_id = $1"}
	args := []interface{}{employeeID}
	argIdx := 2

	if filter.LeaveTypeID != nil && *filter.LeaveTypeID != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("lr.leave_type_id = $%d", argIdx))
		args = append(args, *filter.LeaveTypeID)
		argIdx++
	}

	if filter.Status != nil && *filter.Status != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("lr.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}

	whereClause := strings.Join(whereClauses, " AND ")

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM leave_requests lr WHERE %s`, whereClause)

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count leave requests: %w", err)
	}

	order := "DESC"
	if strings.ToLower(filter.SortOrder) == "asc" {
		order = "ASC"
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`
		SELECT %s,
			   lt.name AS leave_type_name,
			   e.full_name AS employee_name
		FROM leave_requests lr
		JOIN leave_types lt ON lr.leave_type_id = lt.id
		JOIN employees e ON lr.employee_id = e.id
		WHERE %s
		ORDER BY lr.created_at %s
		LIMIT $%d OFFSET $%d
	`, leaveRequestColumns, whereClause, order, argIdx, argIdx+1)

	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		req, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, req)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return requests, total, nil
}

func (r *leaveRequestRepositoryImpl) ListPendingForOfficer(ctx context.Context, officerID string, from, to time.Time) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s,
			   lt.name AS leave_type_name,
			   e.full_name AS employee_name
		FROM leave_requests lr
		JOIN leave_types lt ON lr.leave_type_id = lt.id
		JOIN employees e ON lr.employee_id = e.id
		WHERE lr.reporting_officer_id = $1
		  AND lr.status = 'submitted'
		  AND lr.from_date BETWEEN $2 AND $3
		ORDER BY lr.created_at
	`, leaveRequestColumns)

	rows, err := q.Query(ctx, query, officerID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		req, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}

	return requests, rows.Err()
}

func (r *leaveRequestRepositoryImpl) UpdateSubmitted(ctx context.Context, upd leave.UpdateLeaveRequestInput) (bool, error) {
	q := GetQuerier(ctx, r.db)

	updates := make([]string, 0)
	args := make([]interface{}, 0)
	argIdx := 1

	set := func(column string, value interface{}) {
		updates = append(updates, fmt.Sprintf("%s = $%d", column, argIdx))
		args = append(args, value)
		argIdx++
	}

	if upd.LeaveTypeID != nil {
		set("leave_type_id", *upd.LeaveTypeID)
	}
	if upd.FromDate != nil {
		set("from_date", *upd.FromDate)
	}
	if upd.ToDate != nil {
		set("to_date", *upd.ToDate)
	}
	if upd.StationFrom != nil {
		set("station_from", *upd.StationFrom)
	}
	if upd.StationTo != nil {
		set("station_to", *upd.StationTo)
	}
	if upd.Days != nil {
		set("days", *upd.Days)
	}
	if upd.CalendarDays != nil {
		set("calendar_days", *upd.CalendarDays)
	}
	if upd.Reason != nil {
		set("reason", *upd.Reason)
	}
	if upd.ContactInfo != nil {
		set("contact_info", *upd.ContactInfo)
	}
	if upd.Recommender1 != nil {
		set("recommender_1", *upd.Recommender1)
	}
	if upd.Recommender2 != nil {
		set("recommender_2", *upd.Recommender2)
	}
	if upd.Recommender3 != nil {
		set("recommender_3", *upd.Recommender3)
	}

	if len(updates) == 0 {
		return false, fmt.Errorf("no updatable fields provided for leave request update")
	}

	set("updated_by", upd.UpdatedBy)
	set("updated_at", time.Now())

	// Ownership and status are re-checked in the same statement as the
	// update; a request already acted upon matches no row.
	query := "UPDATE leave_requests SET " + strings.Join(updates, ", ") +
		fmt.Sprintf(" WHERE id = $%d AND requester_id = $%d AND status = 'submitted'", argIdx, argIdx+1)
	args = append(args, upd.ID, upd.RequesterID)

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to update leave request %s: %w", upd.ID, err)
	}

	return tag.RowsAffected() == 1, nil
}

func (r *leaveRequestRepositoryImpl) CancelSubmitted(ctx context.Context, id, requesterID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = 'cancelled', updated_by = $2, updated_at = NOW()
		WHERE id = $1 AND requester_id = $2 AND status = 'submitted'
	`

	tag, err := q.Exec(ctx, query, id, requesterID)
	if err != nil {
		return false, fmt.Errorf("failed to cancel leave request %s: %w", id, err)
	}

	return tag.RowsAffected() == 1, nil
}

func (r *leaveRequestRepositoryImpl) Decide(ctx context.Context, id, officerID string, status leave.RequestStatus, comment *string, from, to time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $3, responder_id = $2, responded_at = NOW(),
			response_comment = $4, updated_by = $2, updated_at = NOW()
		WHERE id = $1 AND reporting_officer_id = $2 AND status = 'submitted'
		  AND from_date BETWEEN $5 AND $6
	`

	tag, err := q.Exec(ctx, query, id, officerID, status, comment, from, to)
	if err != nil {
		return false, fmt.Errorf("failed to decide leave request %s: %w", id, err)
	}

	return tag.RowsAffected() == 1, nil
}

func (r *leaveRequestRepositoryImpl) Recommend(ctx context.Context, id, recommenderID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET recommended_by = $2, recommended_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND status = 'submitted'
		  AND $2 IN (recommender_1, recommender_2, recommender_3)
	`

	tag, err := q.Exec(ctx, query, id, recommenderID)
	if err != nil {
		return false, fmt.Errorf("failed to recommend leave request %s: %w", id, err)
	}

	return tag.RowsAffected() == 1, nil
}

func (r *leaveRequestRepositoryImpl) MarkApprovedCancelled(ctx context.Context, id string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = 'cancelled', updated_at = NOW()
		WHERE id = $1 AND status = 'approved'
	`

	tag, err := q.Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("failed to mark leave request %s cancelled: %w", id, err)
	}

	return tag.RowsAffected() == 1, nil
}

func (r *leaveRequestRepositoryImpl) SumSubmittedDays(ctx context.Context, employeeID, leaveTypeID string, from, to time.Time) (float64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(days), 0)
		FROM leave_requests
		WHERE employee_id = $1 AND leave_type_id = $2
		  AND status = 'submitted'
		  AND from_date BETWEEN $3 AND $4
	`

	var sum float64
	err := q.QueryRow(ctx, query, employeeID, leaveTypeID, from, to).Scan(&sum)
	return sum, err
}

func (r *leaveRequestRepositoryImpl) LastApproverID(ctx context.Context, employeeID string) (string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT responder_id
		FROM leave_requests
		WHERE employee_id = $1 AND status = 'approved' AND responder_id IS NOT NULL
		ORDER BY responded_at DESC
		LIMIT 1
	`

	var approverID string
	err := q.QueryRow(ctx, query, employeeID).Scan(&approverID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", err
	}

	return approverID, nil
}

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var req leave.LeaveRequest
	var leaveTypeName, employeeName string

	err := row.Scan(
		&req.ID, &req.RequesterID, &req.EmployeeID, &req.LeaveTypeID,
		&req.FromDate, &req.ToDate, &req.StationFrom, &req.StationTo,
		&req.ShortLeave, &req.ShortLeaveTime, &req.Days, &req.CalendarDays,
		&req.Reason, &req.ContactInfo, &req.Status, &req.ReportingOfficerID,
		&req.Recommender1, &req.Recommender2, &req.Recommender3,
		&req.RecommendedBy, &req.RecommendedAt,
		&req.ResponderID, &req.RespondedAt, &req.ResponseComment,
		&req.CreatedBy, &req.CreatedAt, &req.UpdatedBy, &req.UpdatedAt,
		&leaveTypeName, &employeeName,
	)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	req.LeaveTypeName = &leaveTypeName
	req.EmployeeName = &employeeName
	return req, nil
}
