package leave

import "errors"

var (
	ErrLeaveRequestNotFound  = errors.New("Leave request not found")
	ErrLeaveTypeNotFound     = errors.New("Leave type not found")
	ErrRuleNotFound          = errors.New("Leave type rule not found")
	ErrTakenRecordNotFound   = errors.New("Leave taken record not found")
	ErrAdjustmentNotFound    = errors.New("Leave adjustment not found")
	ErrAssignmentNotFound    = errors.New("Leave assignment not found")
	ErrZeroDayRequest        = errors.New("Computed leave days must be positive")
	ErrLeaveAlreadyProcessed = errors.New("Leave request already processed")
	ErrAdjustmentProcessed   = errors.New("Leave adjustment already processed")
	ErrNotRequestOwner       = errors.New("Only the requester may modify this request")
	ErrNotReportingOfficer   = errors.New("Only the reporting officer may act on this request")
	ErrNotRecommender        = errors.New("Only a listed recommender may forward this request")
	ErrNoReportingOfficer    = errors.New("No reporting officer could be resolved")
	ErrTakenRecordCancelled  = errors.New("Leave taken record already cancelled")
	ErrUnauthorizedAccess    = errors.New("Not permitted to view this leave request")
	ErrOutsideFinancialYear  = errors.New("Leave request is outside the current financial year")
)
