package storefront

import (
	"github.com/angelmondragon/storefront/internal/shipping"
	"github.com/angelmondragon/storefront/pkg/enums"
)

// EventKind names one shopper input.
type EventKind string

const (
	EventCatalogRequested  EventKind = "catalog_requested"
	EventCategorySelected  EventKind = "category_selected"
	EventSearchChanged     EventKind = "search_changed"
	EventAddToCart         EventKind = "add_to_cart"
	EventQuantityChanged   EventKind = "quantity_changed"
	EventRemoveFromCart    EventKind = "remove_from_cart"
	EventCheckoutOpened    EventKind = "checkout_opened"
	EventFieldBlurred      EventKind = "field_blurred"
	EventFieldChanged      EventKind = "field_changed"
	EventShippingSubmitted EventKind = "shipping_submitted"
	EventBackToShipping    EventKind = "back_to_shipping"
	EventOrderPlaced       EventKind = "order_placed"
	EventContinueShopping  EventKind = "continue_shopping"
)

func (k EventKind) String() string {
	return string(k)
}

// Event carries one input and whatever payload its kind needs.
type Event struct {
	Kind      EventKind
	Category  string
	Query     string
	ProductID int
	Direction enums.QuantityDirection
	Field     shipping.Field
	Value     string
	Shipping  map[shipping.Field]string
}

func CatalogRequested() Event {
	return Event{Kind: EventCatalogRequested}
}

func CategorySelected(category string) Event {
	return Event{Kind: EventCategorySelected, Category: category}
}

func SearchChanged(query string) Event {
	return Event{Kind: EventSearchChanged, Query: query}
}

func AddToCart(productID int) Event {
	return Event{Kind: EventAddToCart, ProductID: productID}
}

func QuantityChanged(productID int, direction enums.QuantityDirection) Event {
	return Event{Kind: EventQuantityChanged, ProductID: productID, Direction: direction}
}

func RemoveFromCart(productID int) Event {
	return Event{Kind: EventRemoveFromCart, ProductID: productID}
}

func CheckoutOpened() Event {
	return Event{Kind: EventCheckoutOpened}
}

// FieldBlurred re-validates a field when it loses focus.
func FieldBlurred(field shipping.Field, value string) Event {
	return Event{Kind: EventFieldBlurred, Field: field, Value: value}
}

// FieldChanged re-validates a field while the shopper types.
func FieldChanged(field shipping.Field, value string) Event {
	return Event{Kind: EventFieldChanged, Field: field, Value: value}
}

func ShippingSubmitted(values map[shipping.Field]string) Event {
	return Event{Kind: EventShippingSubmitted, Shipping: values}
}

func BackToShipping() Event {
	return Event{Kind: EventBackToShipping}
}

func OrderPlaced() Event {
	return Event{Kind: EventOrderPlaced}
}

func ContinueShopping() Event {
	return Event{Kind: EventContinueShopping}
}
