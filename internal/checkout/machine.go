package checkout

import (
	"time"

	"github.com/angelmondragon/storefront/internal/cart"
	"github.com/angelmondragon/storefront/internal/orders"
	"github.com/angelmondragon/storefront/internal/shipping"
	"github.com/angelmondragon/storefront/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/google/uuid"
)

// Session is one pass through shipping -> review -> confirmation.
type Session struct {
	ID          uuid.UUID
	Step        enums.CheckoutStep
	FieldErrors map[shipping.Field]string
	Shipping    *shipping.Info
	Order       *orders.Order
}

func (s *Session) clone() Session {
	out := Session{ID: s.ID, Step: s.Step}
	out.FieldErrors = make(map[shipping.Field]string, len(s.FieldErrors))
	for k, v := range s.FieldErrors {
		out.FieldErrors[k] = v
	}
	if s.Shipping != nil {
		info := *s.Shipping
		out.Shipping = &info
	}
	if s.Order != nil {
		order := *s.Order
		order.Lines = append([]cart.Line(nil), s.Order.Lines...)
		out.Order = &order
	}
	return out
}

// Machine owns the checkout session and reads the live cart for guards and totals.
// It is not safe for concurrent use.
type Machine struct {
	cart      *cart.Cart
	generator orders.Generator
	now       func() time.Time
	newID     func() uuid.UUID
	session   *Session
}

// Option configures a Machine.
type Option func(*Machine)

// WithClock overrides the placement timestamp source.
func WithClock(now func() time.Time) Option {
	return func(m *Machine) {
		if now != nil {
			m.now = now
		}
	}
}

// WithSessionIDs overrides session id generation.
func WithSessionIDs(newID func() uuid.UUID) Option {
	return func(m *Machine) {
		if newID != nil {
			m.newID = newID
		}
	}
}

// NewMachine builds a machine over c. A nil generator uses orders.NewRandomGenerator.
func NewMachine(c *cart.Cart, generator orders.Generator, opts ...Option) *Machine {
	if generator == nil {
		generator = orders.NewRandomGenerator(nil)
	}
	m := &Machine{
		cart:      c,
		generator: generator,
		now:       time.Now,
		newID:     uuid.New,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	return m
}

// Active reports whether a session is open.
func (m *Machine) Active() bool {
	return m.session != nil
}

// Session returns a copy of the open session.
func (m *Machine) Session() (Session, bool) {
	if m.session == nil {
		return Session{}, false
	}
	return m.session.clone(), true
}

// Step is the current step, or "" when no session is open.
func (m *Machine) Step() enums.CheckoutStep {
	if m.session == nil {
		return ""
	}
	return m.session.Step
}

// Begin opens a fresh session at shipping. It requires a non-empty cart and is refused
// while an order confirmation is on screen.
func (m *Machine) Begin() (uuid.UUID, error) {
	if m.cart.IsEmpty() {
		return uuid.Nil, ErrCartEmpty
	}
	if m.session != nil && m.session.Step == enums.CheckoutStepConfirmation {
		return uuid.Nil, ErrWrongStep
	}
	m.session = &Session{
		ID:          m.newID(),
		Step:        enums.CheckoutStepShipping,
		FieldErrors: make(map[shipping.Field]string),
	}
	return m.session.ID, nil
}

func (m *Machine) requireStep(step enums.CheckoutStep) error {
	if m.session == nil {
		return ErrNoSession
	}
	if m.session.Step != step {
		return ErrWrongStep
	}
	return nil
}

// ValidateField re-checks one field after it loses focus and records or clears its
// error. No other field's entry is touched.
func (m *Machine) ValidateField(field shipping.Field, value string) (shipping.Result, error) {
	if err := m.requireStep(enums.CheckoutStepShipping); err != nil {
		return shipping.Result{}, err
	}
	res := shipping.Validate(field, value)
	if !field.IsKnown() {
		return res, nil
	}
	if res.Valid {
		delete(m.session.FieldErrors, field)
	} else {
		m.session.FieldErrors[field] = res.Message
	}
	return res, nil
}

// RevalidateField handles typing in a field. An existing error is cleared once the
// value becomes valid; new errors are only reported on blur or submit.
func (m *Machine) RevalidateField(field shipping.Field, value string) (shipping.Result, error) {
	if err := m.requireStep(enums.CheckoutStepShipping); err != nil {
		return shipping.Result{}, err
	}
	res := shipping.Validate(field, value)
	if _, flagged := m.session.FieldErrors[field]; flagged && res.Valid {
		delete(m.session.FieldErrors, field)
	}
	return res, nil
}

// SubmitShipping validates the whole form. On success the raw values are captured and
// the session moves to review; otherwise it stays at shipping with every failing
// field's message recorded. The returned map is empty on success.
func (m *Machine) SubmitShipping(values map[shipping.Field]string) (map[shipping.Field]string, error) {
	if err := m.requireStep(enums.CheckoutStepShipping); err != nil {
		return nil, err
	}
	ok, errs := shipping.ValidateAll(values)
	m.session.FieldErrors = make(map[shipping.Field]string, len(errs))
	for f, msg := range errs {
		m.session.FieldErrors[f] = msg
	}
	if !ok {
		return errs, nil
	}
	info := shipping.InfoFromValues(values)
	m.session.Shipping = &info
	m.session.Step = enums.CheckoutStepReview
	return errs, nil
}

// BackToShipping returns from review to shipping. Captured shipping info is kept.
func (m *Machine) BackToShipping() error {
	if err := m.requireStep(enums.CheckoutStepReview); err != nil {
		return err
	}
	m.session.Step = enums.CheckoutStepShipping
	return nil
}

// PlaceOrder draws one order id and freezes the cart and shipping info into the order
// record. A generator failure leaves the session at review.
func (m *Machine) PlaceOrder() (orders.Order, error) {
	if err := m.requireStep(enums.CheckoutStepReview); err != nil {
		return orders.Order{}, err
	}
	if m.cart.IsEmpty() {
		return orders.Order{}, ErrCartEmpty
	}

	id, err := m.generator.Generate()
	if err != nil {
		return orders.Order{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate order id")
	}

	var info shipping.Info
	if m.session.Shipping != nil {
		info = *m.session.Shipping
	}
	order := orders.NewOrder(id, m.cart.Snapshot(), info, m.now())
	m.session.Order = &order
	m.session.Step = enums.CheckoutStepConfirmation
	return order, nil
}

// ContinueShopping ends a confirmed session: the cart, shipping info and order id are
// all cleared.
func (m *Machine) ContinueShopping() error {
	if err := m.requireStep(enums.CheckoutStepConfirmation); err != nil {
		return err
	}
	m.cart.Clear()
	m.session = nil
	return nil
}
