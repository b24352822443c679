package prompt

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cast"
)

var errNotPositive = errors.New("must be a positive integer")

// PositiveInteger accepts any integral number greater than zero, including
// whole floats from decoded JSON, or its decimal text, e.g. 3, 3.0 or "3".
func PositiveInteger(value any) error {
	switch v := value.(type) {
	case nil, bool:
		return fmt.Errorf("%w, got %T", errNotPositive, value)
	case float32:
		if !isWhole(float64(v)) {
			return fmt.Errorf("%w, got %v", errNotPositive, v)
		}
	case float64:
		if !isWhole(v) {
			return fmt.Errorf("%w, got %v", errNotPositive, v)
		}
	case string:
		value = strings.TrimSpace(v)
	}

	n, err := cast.ToInt64E(value)
	if err != nil {
		return fmt.Errorf("%w, got %T %v", errNotPositive, value, value)
	}
	if n < 1 {
		return fmt.Errorf("%w, got %d", errNotPositive, n)
	}
	return nil
}

func isWhole(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f) && math.Trunc(f) == f
}
