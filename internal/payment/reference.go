package payment

import (
	"fmt"
	"strconv"
	"strings"
)

// OrderRefPrefix prefixes the local order id in the reference sent to
// Paybyrd, e.g. "npc_482".
const OrderRefPrefix = "npc_"

func FormatOrderRef(orderID int) string {
	return OrderRefPrefix + strconv.Itoa(orderID)
}

// ParseOrderRef extracts the local order id. The prefix is mandatory and the
// suffix must be a positive base-10 integer with nothing around it.
func ParseOrderRef(ref string) (int, error) {
	suffix, ok := strings.CutPrefix(ref, OrderRefPrefix)
	if !ok || suffix == "" {
		return 0, fmt.Errorf("%w: %q", ErrInvalidReference, ref)
	}
	for _, r := range suffix {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%w: %q", ErrInvalidReference, ref)
		}
	}

	id, err := strconv.Atoi(suffix)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidReference, ref)
	}
	return id, nil
}
