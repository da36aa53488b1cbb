package types

// Record statuses shared by users, products, roles and services.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Statuses lists the values accepted for the shared status field.
var Statuses = []string{StatusActive, StatusInactive}

// ToggleStatus returns the opposite of an active/inactive status. Any other
// value is treated as inactive and toggles to active.
func ToggleStatus(status string) string {
	if status == StatusActive {
		return StatusInactive
	}
	return StatusActive
}
