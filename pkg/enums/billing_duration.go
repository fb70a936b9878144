package enums

import "fmt"

// BillingDuration defines how long a subscription purchase lasts.
type BillingDuration string

const (
	BillingDurationMonthly BillingDuration = "monthly"
	BillingDurationYearly  BillingDuration = "yearly"
)

var validBillingDurations = []BillingDuration{
	BillingDurationMonthly,
	BillingDurationYearly,
}

// String implements fmt.Stringer.
func (b BillingDuration) String() string {
	return string(b)
}

// IsValid reports whether the value is a known BillingDuration.
func (b BillingDuration) IsValid() bool {
	for _, candidate := range validBillingDurations {
		if candidate == b {
			return true
		}
	}
	return false
}

// ParseBillingDuration converts raw input into a BillingDuration.
func ParseBillingDuration(value string) (BillingDuration, error) {
	for _, candidate := range validBillingDurations {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid billing duration %q", value)
}
