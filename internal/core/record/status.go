package record

// Status is the lifecycle tag shared by expense and overtime records. It
// drives both display and inclusion in monetary totals.
type Status string

const (
	StatusDefault  Status = "Default"
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

// Normalize maps an arbitrary stored value onto the enum. Absent or
// unrecognized values fall back to Default.
func Normalize(raw string) Status {
	switch Status(raw) {
	case StatusPending, StatusApproved, StatusRejected, StatusDefault:
		return Status(raw)
	default:
		return StatusDefault
	}
}

// IsValid reports whether raw is one of the four enum values.
func IsValid(raw string) bool {
	switch Status(raw) {
	case StatusDefault, StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// CountsTowardTotals reports whether a record with this status contributes
// to monetary totals and chart series. Rejected records stay visible in
// list views but never count.
func (s Status) CountsTowardTotals() bool {
	return s != StatusRejected
}
