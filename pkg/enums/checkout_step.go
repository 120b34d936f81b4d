package enums

import "fmt"

// CheckoutStep is the position of a checkout session in the shipping → review → confirmation flow.
type CheckoutStep string

const (
	CheckoutStepShipping     CheckoutStep = "shipping"
	CheckoutStepReview       CheckoutStep = "review"
	CheckoutStepConfirmation CheckoutStep = "confirmation"
)

var orderedCheckoutSteps = []CheckoutStep{
	CheckoutStepShipping,
	CheckoutStepReview,
	CheckoutStepConfirmation,
}

// String implements fmt.Stringer.
func (s CheckoutStep) String() string {
	return string(s)
}

// IsValid reports whether the value is a known CheckoutStep.
func (s CheckoutStep) IsValid() bool {
	return s.Number() > 0
}

// Number returns the 1-based position used by progress indicators, or 0 when unknown.
func (s CheckoutStep) Number() int {
	for i, candidate := range orderedCheckoutSteps {
		if candidate == s {
			return i + 1
		}
	}
	return 0
}

// ParseCheckoutStep converts raw input into a CheckoutStep.
func ParseCheckoutStep(value string) (CheckoutStep, error) {
	for _, candidate := range orderedCheckoutSteps {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid checkout step %q", value)
}
