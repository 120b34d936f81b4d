package enums

import "fmt"

// QuantityDirection is the +/- control on a cart line.
type QuantityDirection string

const (
	QuantityIncrease QuantityDirection = "increase"
	QuantityDecrease QuantityDirection = "decrease"
)

var validQuantityDirections = []QuantityDirection{
	QuantityIncrease,
	QuantityDecrease,
}

// String implements fmt.Stringer.
func (d QuantityDirection) String() string {
	return string(d)
}

// Delta maps the direction onto the cart's +1/-1 quantity change.
func (d QuantityDirection) Delta() int {
	switch d {
	case QuantityIncrease:
		return 1
	case QuantityDecrease:
		return -1
	}
	return 0
}

// ParseQuantityDirection converts raw input into a QuantityDirection.
func ParseQuantityDirection(value string) (QuantityDirection, error) {
	for _, candidate := range validQuantityDirections {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid quantity direction %q", value)
}
