package overtime

import (
	"time"

	"github.com/rootslab/opsfinance/internal/core/record"
)

// Overtime is an employee overtime entry. The payable amount is always
// derived as days times rate and never stored.
type Overtime struct {
	ID           string    `json:"id" gorm:"primaryKey;column:id"`
	Date         string    `json:"date" gorm:"column:date;not null"`
	EmployeeName string    `json:"employee_name" gorm:"column:employee_name;not null"`
	Days         int       `json:"days" gorm:"column:days;not null"`
	Rate         int64     `json:"rate" gorm:"column:rate;not null"`
	Status       string    `json:"status" gorm:"column:status;default:Default"`
	Note         string    `json:"note" gorm:"column:note"`
	CreatedAt    time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Overtime) TableName() string {
	return "overtimes"
}

// Amount is the derived payable value.
func (o *Overtime) Amount() int64 {
	return int64(o.Days) * o.Rate
}

// DateString implements the aggregation engine's record view.
func (o *Overtime) DateString() string {
	return o.Date
}

// SearchText matches the dashboard's free-text filter: employee name only.
func (o *Overtime) SearchText() string {
	return o.EmployeeName
}

func (o *Overtime) StatusValue() record.Status {
	return record.Normalize(o.Status)
}

// Contribution is days times rate, the value overtime adds to totals.
func (o *Overtime) Contribution() int64 {
	return o.Amount()
}
