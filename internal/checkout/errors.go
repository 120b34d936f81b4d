package checkout

import pkgerrors "github.com/angelmondragon/storefront/pkg/errors"

var (
	// ErrCartEmpty is returned when checkout is opened or an order placed with no lines.
	ErrCartEmpty = pkgerrors.New(pkgerrors.CodeStateConflict, "cart is empty")
	// ErrNoSession is returned for checkout events while no session is open.
	ErrNoSession = pkgerrors.New(pkgerrors.CodeStateConflict, "checkout has not been started")
	// ErrWrongStep is returned when an event does not apply to the current step.
	ErrWrongStep = pkgerrors.New(pkgerrors.CodeStateConflict, "event does not apply to the current checkout step")
)
