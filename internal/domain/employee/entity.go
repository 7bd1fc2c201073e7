package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee is the directory record the leave core consumes read-only. The
// authoritative source is the university establishment module.
type Employee struct {
	ID                  string
	Code                string
	FullName            string
	DepartmentID        string
	LocationID          string
	Nature              Nature
	ControllingOfficeID *string
	ReportingTo         *string
	HireDate            time.Time
	BaseSalary          *decimal.Decimal
	Status              Status
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Nature classifies employees for leave-rule purposes. Several leave-type
// rules differ between teaching and non-teaching staff.
type Nature string

const (
	NatureTeaching    Nature = "teaching"
	NatureNonTeaching Nature = "non_teaching"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusResigned Status = "resigned"
	StatusRetired  Status = "retired"
)

type Department struct {
	ID     string
	Name   string
	HeadID *string
}

// ControllingOffice names the administrative office an employee reports
// through when no departmental hierarchy applies.
type ControllingOffice struct {
	ID        string
	Name      string
	OfficerID *string
}
