package enums

import "fmt"

// SellerStatus tracks seller account approval. A seller is unusable for
// login or selling until active.
type SellerStatus string

const (
	SellerStatusPending  SellerStatus = "pending"
	SellerStatusActive   SellerStatus = "active"
	SellerStatusRejected SellerStatus = "rejected"
)

var validSellerStatuses = []SellerStatus{
	SellerStatusPending,
	SellerStatusActive,
	SellerStatusRejected,
}

// String implements fmt.Stringer.
func (s SellerStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SellerStatus.
func (s SellerStatus) IsValid() bool {
	for _, candidate := range validSellerStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSellerStatus converts raw input into a SellerStatus.
func ParseSellerStatus(value string) (SellerStatus, error) {
	for _, candidate := range validSellerStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid seller status %q", value)
}
