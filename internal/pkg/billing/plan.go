package billing

import (
	"fmt"
	"strings"
)

const (
	PlanFourMonths   = "4_MONTHS"
	PlanEightMonths  = "8_MONTHS"
	PlanTwelveMonths = "12_MONTHS"
)

// PlanMonths maps a subscription plan id to its purchased duration. Unknown
// plan ids are rejected; defaulting an unrecognized plan to the most
// generous term would hand out free subscription time.
func PlanMonths(planID string) (int, error) {
	switch strings.ToUpper(strings.TrimSpace(planID)) {
	case PlanFourMonths:
		return 4, nil
	case PlanEightMonths:
		return 8, nil
	case PlanTwelveMonths:
		return 12, nil
	default:
		return 0, fmt.Errorf("unknown subscription plan id: %q", planID)
	}
}
