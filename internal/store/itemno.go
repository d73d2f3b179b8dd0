package store

import (
	"fmt"
	"strconv"
	"strings"
)

// ItemNo builds a line item id from its order number and 1-based position.
// Embedding the order number keeps item lookups a single order read in the
// document backend.
func ItemNo(ordNo int64, n int) string {
	return fmt.Sprintf("%d-%d", ordNo, n)
}

// ParseItemNo extracts the order number from a line item id.
func ParseItemNo(ordItemNo string) (int64, error) {
	head, _, ok := strings.Cut(ordItemNo, "-")
	if !ok {
		return 0, fmt.Errorf("malformed order item id %q", ordItemNo)
	}
	ordNo, err := strconv.ParseInt(head, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed order item id %q: %w", ordItemNo, err)
	}
	return ordNo, nil
}
