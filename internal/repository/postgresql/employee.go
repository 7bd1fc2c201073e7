package postgresql

import (
	"context"
	"errors"

	"github.com/campus-erp/leave-backend-go/internal/domain/employee"
	"github.com/campus-erp/leave-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, code, full_name, department_id, location_id, nature,
			   controlling_office_id, reporting_to, hire_date, base_salary,
			   status, created_at, updated_at
		FROM employees
		WHERE id = $1
	`

	var e employee.Employee
	err := q.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.Code, &e.FullName, &e.DepartmentID, &e.LocationID, &e.Nature,
		&e.ControllingOfficeID, &e.ReportingTo, &e.HireDate, &e.BaseSalary,
		&e.Status, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}

	return e, nil
}

func (r *employeeRepositoryImpl) ListActive(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, code, full_name, department_id, location_id, nature,
			   controlling_office_id, reporting_to, hire_date, base_salary,
			   status, created_at, updated_at
		FROM employees
		WHERE status = 'active'
		ORDER BY code
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var e employee.Employee
		err := rows.Scan(
			&e.ID, &e.Code, &e.FullName, &e.DepartmentID, &e.LocationID, &e.Nature,
			&e.ControllingOfficeID, &e.ReportingTo, &e.HireDate, &e.BaseSalary,
			&e.Status, &e.CreatedAt, &e.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}

	return employees, rows.Err()
}

func (r *employeeRepositoryImpl) GetDepartment(ctx context.Context, id string) (employee.Department, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT id, name, head_id FROM departments WHERE id = $1`

	var d employee.Department
	err := q.QueryRow(ctx, query, id).Scan(&d.ID, &d.Name, &d.HeadID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Department{}, employee.ErrDepartmentNotFound
		}
		return employee.Department{}, err
	}

	return d, nil
}

func (r *employeeRepositoryImpl) GetControllingOffice(ctx context.Context, id string) (employee.ControllingOffice, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT id, name, officer_id FROM controlling_offices WHERE id = $1`

	var o employee.ControllingOffice
	err := q.QueryRow(ctx, query, id).Scan(&o.ID, &o.Name, &o.OfficerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.ControllingOffice{}, employee.ErrControllingOfficeNotFound
		}
		return employee.ControllingOffice{}, err
	}

	return o, nil
}
