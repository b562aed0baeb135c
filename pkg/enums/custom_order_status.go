package enums

import "fmt"

// CustomOrderStatus tracks a bespoke order request through its quote lifecycle.
type CustomOrderStatus string

const (
	CustomOrderStatusRequested CustomOrderStatus = "requested"
	CustomOrderStatusQuoted    CustomOrderStatus = "quoted"
	CustomOrderStatusAccepted  CustomOrderStatus = "accepted"
	CustomOrderStatusDeclined  CustomOrderStatus = "declined"
	CustomOrderStatusCompleted CustomOrderStatus = "completed"
)

var validCustomOrderStatuses = []CustomOrderStatus{
	CustomOrderStatusRequested,
	CustomOrderStatusQuoted,
	CustomOrderStatusAccepted,
	CustomOrderStatusDeclined,
	CustomOrderStatusCompleted,
}

// String implements fmt.Stringer.
func (s CustomOrderStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known CustomOrderStatus.
func (s CustomOrderStatus) IsValid() bool {
	for _, candidate := range validCustomOrderStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseCustomOrderStatus converts raw input into a CustomOrderStatus.
func ParseCustomOrderStatus(value string) (CustomOrderStatus, error) {
	for _, candidate := range validCustomOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid custom order status %q", value)
}
