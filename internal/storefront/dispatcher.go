package storefront

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/angelmondragon/storefront/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/metrics"
)

// Dispatcher is the single entry point for shopper events. Every mutation of the
// owned State happens under its mutex, one event at a time.
type Dispatcher struct {
	mu         sync.Mutex
	state      *State
	source     catalog.Source
	sourceName string
	logg       *logger.Logger
	metrics    *metrics.StorefrontMetrics
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

func WithLogger(logg *logger.Logger) Option {
	return func(d *Dispatcher) {
		if logg != nil {
			d.logg = logg
		}
	}
}

func WithMetrics(m *metrics.StorefrontMetrics) Option {
	return func(d *Dispatcher) {
		d.metrics = m
	}
}

// WithSourceName labels catalog fetch metrics and logs.
func WithSourceName(name string) Option {
	return func(d *Dispatcher) {
		if name != "" {
			d.sourceName = name
		}
	}
}

func NewDispatcher(state *State, source catalog.Source, opts ...Option) (*Dispatcher, error) {
	if state == nil {
		return nil, fmt.Errorf("storefront state required")
	}
	if source == nil {
		return nil, fmt.Errorf("catalog source required")
	}
	d := &Dispatcher{
		state:      state,
		source:     source,
		sourceName: "catalog",
		logg:       logger.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d, nil
}

// View renders the current state without changing it.
func (d *Dispatcher) View() View {
	d.mu.Lock()
	defer d.mu.Unlock()
	return buildView(d.state)
}

// Handle applies one event and returns the resulting view. applied is false when the
// event had no effect, such as a checkout event that does not fit the current step or
// an unknown product id. A non-nil error means the event itself was malformed or a
// collaborator failed.
func (d *Dispatcher) Handle(ctx context.Context, ev Event) (View, bool, error) {
	ctx = d.logg.WithEventKind(ctx, ev.Kind.String())

	if ev.Kind == EventCatalogRequested {
		view, _ := d.LoadCatalog(ctx)
		d.metrics.ObserveEvent(ev.Kind.String(), true)
		return view, true, nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if sess, ok := d.state.checkout.Session(); ok {
		ctx = d.logg.WithSessionID(ctx, sess.ID.String())
	}

	applied, err := d.apply(ctx, ev)
	if err != nil && pkgerrors.IsCode(err, pkgerrors.CodeStateConflict) {
		d.logg.Debug(d.logg.WithField(ctx, "reason", pkgerrors.As(err).Message()), "storefront.event_ignored")
		applied, err = false, nil
	}
	d.metrics.ObserveEvent(ev.Kind.String(), applied)
	if err != nil {
		return buildView(d.state), false, err
	}

	d.logg.Debug(d.logg.WithField(ctx, "applied", applied), "storefront.event_handled")
	return buildView(d.state), applied, nil
}

func (d *Dispatcher) apply(ctx context.Context, ev Event) (bool, error) {
	s := d.state
	switch ev.Kind {
	case EventCategorySelected:
		s.criteria = s.criteria.WithCategory(ev.Category)
		return true, nil

	case EventSearchChanged:
		s.criteria = s.criteria.WithSearch(ev.Query)
		return true, nil

	case EventAddToCart:
		p, ok := catalog.FindByID(s.products, ev.ProductID)
		if !ok {
			return false, nil
		}
		s.cart.Add(p)
		return true, nil

	case EventQuantityChanged:
		return s.cart.ChangeQuantity(ev.ProductID, ev.Direction.Delta()), nil

	case EventRemoveFromCart:
		return s.cart.Remove(ev.ProductID), nil

	case EventCheckoutOpened:
		id, err := s.checkout.Begin()
		if err != nil {
			return false, err
		}
		d.logg.Info(d.logg.WithSessionID(ctx, id.String()), "checkout.started")
		return true, nil

	case EventFieldBlurred:
		if !ev.Field.IsKnown() {
			return false, nil
		}
		_, err := s.checkout.ValidateField(ev.Field, ev.Value)
		return err == nil, err

	case EventFieldChanged:
		if !ev.Field.IsKnown() {
			return false, nil
		}
		_, err := s.checkout.RevalidateField(ev.Field, ev.Value)
		return err == nil, err

	case EventShippingSubmitted:
		errs, err := s.checkout.SubmitShipping(ev.Shipping)
		if err != nil {
			return false, err
		}
		if len(errs) > 0 {
			d.logg.Debug(d.logg.WithField(ctx, "invalid_fields", len(errs)), "checkout.shipping_rejected")
		}
		return true, nil

	case EventBackToShipping:
		return appliedUnless(s.checkout.BackToShipping())

	case EventOrderPlaced:
		order, err := s.checkout.PlaceOrder()
		if err != nil {
			return false, err
		}
		d.metrics.IncOrdersPlaced()
		d.logg.Info(d.logg.WithFields(ctx, map[string]any{
			"order_id": order.ID,
			"total":    order.Total.StringFixed(2),
			"items":    order.ItemCount,
		}), "checkout.order_placed")
		return true, nil

	case EventContinueShopping:
		return appliedUnless(s.checkout.ContinueShopping())

	default:
		return false, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown event kind %q", ev.Kind))
	}
}

func appliedUnless(err error) (bool, error) {
	if err != nil {
		return false, err
	}
	return true, nil
}

// LoadCatalog retrieves the catalog from the configured source. The catalog reads as
// empty and loading while the fetch is in flight; the fetch itself runs without the
// lock so other events keep flowing. When two loads overlap the last one to finish wins.
func (d *Dispatcher) LoadCatalog(ctx context.Context) (View, error) {
	d.mu.Lock()
	d.state.products = []catalog.Product{}
	d.state.catalogStatus = enums.CatalogStatusLoading
	d.mu.Unlock()

	ctx = d.logg.WithField(ctx, "catalog_source", d.sourceName)
	started := time.Now()
	products, err := d.source.Fetch(ctx)
	d.metrics.ObserveCatalogFetch(d.sourceName, time.Since(started), err)

	d.mu.Lock()
	defer d.mu.Unlock()
	if err != nil {
		d.state.products = []catalog.Product{}
		d.state.catalogStatus = enums.CatalogStatusFailed
		d.logg.Error(ctx, "catalog.load_failed", err)
		return buildView(d.state), err
	}

	if products == nil {
		products = []catalog.Product{}
	}
	d.state.products = products
	d.state.catalogStatus = enums.CatalogStatusReady
	d.logg.Info(d.logg.WithField(ctx, "products", len(products)), "catalog.loaded")
	return buildView(d.state), nil
}
