package employee

import "context"

// EmployeeRepository - read-only view over the directory tables
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	ListActive(ctx context.Context) ([]Employee, error)
	GetDepartment(ctx context.Context, id string) (Department, error)
	GetControllingOffice(ctx context.Context, id string) (ControllingOffice, error)
}
