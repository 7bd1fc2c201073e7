package leave

import (
	"context"
	"fmt"

	"github.com/campus-erp/leave-backend-go/internal/domain/leave"
	"github.com/campus-erp/leave-backend-go/internal/pkg/database"
)

// AdjustmentService handles the post-approval sub-workflows: revising a taken
// record's day count, or cancelling it outright. Approval of either is the
// only path that mutates a closed request's accounting, so the balance
// mutation and the status flips commit as one transaction.
type AdjustmentService struct {
	tx          database.Transactor
	adjustments leave.LeaveAdjustmentRepository
	taken       leave.LeaveTakenRepository
	requests    leave.LeaveRequestRepository
	assignments leave.LeaveAssignmentRepository
}

func NewAdjustmentService(
	tx database.Transactor,
	adjustmentRepo leave.LeaveAdjustmentRepository,
	takenRepo leave.LeaveTakenRepository,
	requestRepo leave.LeaveRequestRepository,
	assignmentRepo leave.LeaveAssignmentRepository,
) *AdjustmentService {
	return &AdjustmentService{
		tx:          tx,
		adjustments: adjustmentRepo,
		taken:       takenRepo,
		requests:    requestRepo,
		assignments: assignmentRepo,
	}
}

// Create files an adjustment (or cancellation) against a taken record.
func (s *AdjustmentService) Create(ctx context.Context, req leave.CreateAdjustmentRequest) (leave.AdjustmentResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.AdjustmentResponse{}, err
	}

	taken, err := s.taken.GetByID(ctx, req.TakenID)
	if err != nil {
		return leave.AdjustmentResponse{}, err
	}
	if taken.Cancelled {
		return leave.AdjustmentResponse{}, leave.ErrTakenRecordCancelled
	}

	// Only the employee the leave was charged to, or whoever filed the
	// original request, may reopen its accounting.
	request, err := s.requests.GetByID(ctx, taken.RequestID)
	if err != nil {
		return leave.AdjustmentResponse{}, err
	}
	if req.RequestedBy != taken.EmployeeID && req.RequestedBy != request.RequesterID {
		return leave.AdjustmentResponse{}, leave.ErrNotRequestOwner
	}

	adj, err := s.adjustments.Create(ctx, leave.LeaveAdjustment{
		TakenID:      req.TakenID,
		ProposedDays: req.ProposedDays,
		Cancellation: req.Cancellation,
		Reason:       req.Reason,
		Status:       leave.AdjustmentStatusSubmitted,
		RequestedBy:  req.RequestedBy,
	})
	if err != nil {
		return leave.AdjustmentResponse{}, err
	}

	return toAdjustmentResponse(adj), nil
}

// Approve applies the adjustment. A plain adjustment back-applies the
// day-count delta to availed and overwrites the taken record's days. A
// cancellation reverses the full availed amount, deletes the day rows, and
// flips the originating request to cancelled.
func (s *AdjustmentService) Approve(ctx context.Context, adjustmentID, responderID string) error {
	return s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		adj, err := s.adjustments.GetByID(txCtx, adjustmentID)
		if err != nil {
			return err
		}
		if adj.Status != leave.AdjustmentStatusSubmitted {
			return leave.ErrAdjustmentProcessed
		}

		taken, err := s.taken.GetByIDForUpdate(txCtx, adj.TakenID)
		if err != nil {
			return err
		}
		if taken.Cancelled {
			return leave.ErrTakenRecordCancelled
		}

		if err := s.authorizeResponder(txCtx, taken, responderID); err != nil {
			return err
		}

		ok, err := s.adjustments.Decide(txCtx, adjustmentID, responderID, leave.AdjustmentStatusApproved)
		if err != nil {
			return err
		}
		if !ok {
			return leave.ErrAdjustmentProcessed
		}

		if adj.Cancellation {
			return s.applyCancellation(txCtx, taken)
		}
		return s.applyAdjustment(txCtx, taken, adj.ProposedDays)
	})
}

// Reject closes the adjustment with no balance effect.
func (s *AdjustmentService) Reject(ctx context.Context, adjustmentID, responderID string) error {
	adj, err := s.adjustments.GetByID(ctx, adjustmentID)
	if err != nil {
		return err
	}

	taken, err := s.taken.GetByID(ctx, adj.TakenID)
	if err != nil {
		return err
	}
	if err := s.authorizeResponder(ctx, taken, responderID); err != nil {
		return err
	}

	ok, err := s.adjustments.Decide(ctx, adjustmentID, responderID, leave.AdjustmentStatusRejected)
	if err != nil {
		return err
	}
	if !ok {
		return leave.ErrAdjustmentProcessed
	}

	return nil
}

// authorizeResponder allows only the reporting officer of the originating
// request to decide an adjustment.
func (s *AdjustmentService) authorizeResponder(ctx context.Context, taken leave.LeaveTaken, responderID string) error {
	request, err := s.requests.GetByID(ctx, taken.RequestID)
	if err != nil {
		return err
	}
	if request.ReportingOfficerID != responderID {
		return leave.ErrNotReportingOfficer
	}
	return nil
}

func (s *AdjustmentService) applyAdjustment(ctx context.Context, taken leave.LeaveTaken, proposedDays float64) error {
	delta := proposedDays - taken.Days

	if err := s.assignments.ApplyDelta(ctx, taken.EmployeeID, taken.LeaveTypeID, taken.Year, delta, delta); err != nil {
		return fmt.Errorf("failed to apply balance delta: %w", err)
	}

	if err := s.taken.UpdateDays(ctx, taken.ID, proposedDays); err != nil {
		return fmt.Errorf("failed to overwrite taken days: %w", err)
	}

	return nil
}

func (s *AdjustmentService) applyCancellation(ctx context.Context, taken leave.LeaveTaken) error {
	if err := s.assignments.ApplyDelta(ctx, taken.EmployeeID, taken.LeaveTypeID, taken.Year, -taken.Days, 0); err != nil {
		return fmt.Errorf("failed to reverse availed days: %w", err)
	}

	if err := s.taken.DeleteDayRows(ctx, taken.ID); err != nil {
		return err
	}

	if err := s.taken.MarkCancelled(ctx, taken.ID); err != nil {
		return err
	}

	ok, err := s.requests.MarkApprovedCancelled(ctx, taken.RequestID)
	if err != nil {
		return err
	}
	if !ok {
		return leave.ErrLeaveAlreadyProcessed
	}

	return nil
}

// ListMine returns the adjustments the employee has filed.
func (s *AdjustmentService) ListMine(ctx context.Context, requesterID string) ([]leave.AdjustmentResponse, error) {
	adjustments, err := s.adjustments.ListByRequester(ctx, requesterID)
	if err != nil {
		return nil, fmt.Errorf("failed to list adjustments: %w", err)
	}

	responses := make([]leave.AdjustmentResponse, 0, len(adjustments))
	for _, adj := range adjustments {
		responses = append(responses, toAdjustmentResponse(adj))
	}

	return responses, nil
}

// ListPending returns submitted adjustments awaiting the officer.
func (s *AdjustmentService) ListPending(ctx context.Context, officerID string) ([]leave.AdjustmentResponse, error) {
	adjustments, err := s.adjustments.ListPendingForOfficer(ctx, officerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending adjustments: %w", err)
	}

	responses := make([]leave.AdjustmentResponse, 0, len(adjustments))
	for _, adj := range adjustments {
		responses = append(responses, toAdjustmentResponse(adj))
	}

	return responses, nil
}

func toAdjustmentResponse(adj leave.LeaveAdjustment) leave.AdjustmentResponse {
	return leave.AdjustmentResponse{
		ID:           adj.ID,
		TakenID:      adj.TakenID,
		ProposedDays: adj.ProposedDays,
		Cancellation: adj.Cancellation,
		Reason:       adj.Reason,
		Status:       string(adj.Status),
		RequestedBy:  adj.RequestedBy,
		RequestedAt:  adj.RequestedAt,
		ResponderID:  adj.ResponderID,
		RespondedAt:  adj.RespondedAt,
	}
}
