package enums

import "fmt"

// RefundStatus is the refund axis, independent of OrderStatus. It is only
// meaningful once an order is cancelled and was not paid cash-on-delivery.
type RefundStatus string

const (
	RefundStatusNotApplicable RefundStatus = "Not Applicable"
	RefundStatusPending       RefundStatus = "Pending"
	RefundStatusProcessing    RefundStatus = "Processing"
	RefundStatusCompleted     RefundStatus = "Completed"
)

var validRefundStatuses = []RefundStatus{
	RefundStatusNotApplicable,
	RefundStatusPending,
	RefundStatusProcessing,
	RefundStatusCompleted,
}

// String implements fmt.Stringer.
func (r RefundStatus) String() string {
	return string(r)
}

// IsValid reports whether the value is a known RefundStatus.
func (r RefundStatus) IsValid() bool {
	for _, candidate := range validRefundStatuses {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseRefundStatus converts raw input into a RefundStatus.
func ParseRefundStatus(value string) (RefundStatus, error) {
	for _, candidate := range validRefundStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid refund status %q", value)
}
