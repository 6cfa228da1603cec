package budget

import "time"

// GlobalBudgetKey is the fixed settings row every budget read and write
// targets. There is exactly one budget for the whole system; reporting is
// month-scoped but the allocation is not.
const GlobalBudgetKey = "global_budget"

// Setting is a row of the settings table.
type Setting struct {
	Key       string    `json:"key" gorm:"primaryKey;column:key"`
	Value     int64     `json:"value" gorm:"column:value;not null"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Setting) TableName() string {
	return "settings"
}
