package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/storefront/api/responses"
	"github.com/angelmondragon/storefront/api/validators"
	"github.com/angelmondragon/storefront/internal/shipping"
	"github.com/angelmondragon/storefront/internal/storefront"
	"github.com/angelmondragon/storefront/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
)

// StorefrontService is the dispatcher surface the kiosk handlers drive.
type StorefrontService interface {
	View() storefront.View
	Handle(ctx context.Context, ev storefront.Event) (storefront.View, bool, error)
}

type storefrontResponse struct {
	Applied bool            `json:"applied"`
	View    storefront.View `json:"view"`
}

type categoryRequest struct {
	Category string `json:"category"`
}

type searchRequest struct {
	Query string `json:"query"`
}

type addToCartRequest struct {
	ProductID int `json:"product_id" validate:"gt=0"`
}

type quantityRequest struct {
	Direction string `json:"direction" validate:"required,oneof=increase decrease"`
}

type fieldRequest struct {
	Value string `json:"value"`
	Mode  string `json:"mode" validate:"omitempty,oneof=blur input"`
}

func StorefrontView(svc StorefrontService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "storefront unavailable"))
			return
		}
		responses.WriteSuccess(w, storefrontResponse{Applied: false, View: svc.View()})
	}
}

// CatalogRefresh re-runs catalog retrieval. A failed fetch still answers 200; the
// view carries the failed status so the page can offer a retry.
func CatalogRefresh(svc StorefrontService, logg *logger.Logger) http.HandlerFunc {
	return dispatch(svc, logg, func(r *http.Request) (storefront.Event, error) {
		return storefront.CatalogRequested(), nil
	})
}

func CatalogCategory(svc StorefrontService, logg *logger.Logger) http.HandlerFunc {
	return dispatch(svc, logg, func(r *http.Request) (storefront.Event, error) {
		var payload categoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			return storefront.Event{}, err
		}
		return storefront.CategorySelected(payload.Category), nil
	})
}

func CatalogSearch(svc StorefrontService, logg *logger.Logger) http.HandlerFunc {
	return dispatch(svc, logg, func(r *http.Request) (storefront.Event, error) {
		var payload searchRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			return storefront.Event{}, err
		}
		return storefront.SearchChanged(payload.Query), nil
	})
}

func CartAddItem(svc StorefrontService, logg *logger.Logger) http.HandlerFunc {
	return dispatch(svc, logg, func(r *http.Request) (storefront.Event, error) {
		var payload addToCartRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			return storefront.Event{}, err
		}
		return storefront.AddToCart(payload.ProductID), nil
	})
}

func CartChangeQuantity(svc StorefrontService, logg *logger.Logger) http.HandlerFunc {
	return dispatch(svc, logg, func(r *http.Request) (storefront.Event, error) {
		productID, err := validators.ParsePathInt(r, "productId")
		if err != nil {
			return storefront.Event{}, err
		}
		var payload quantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			return storefront.Event{}, err
		}
		direction, err := enums.ParseQuantityDirection(payload.Direction)
		if err != nil {
			return storefront.Event{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid direction")
		}
		return storefront.QuantityChanged(productID, direction), nil
	})
}

func CartRemoveItem(svc StorefrontService, logg *logger.Logger) http.HandlerFunc {
	return dispatch(svc, logg, func(r *http.Request) (storefront.Event, error) {
		productID, err := validators.ParsePathInt(r, "productId")
		if err != nil {
			return storefront.Event{}, err
		}
		return storefront.RemoveFromCart(productID), nil
	})
}

func CheckoutOpen(svc StorefrontService, logg *logger.Logger) http.HandlerFunc {
	return dispatch(svc, logg, func(r *http.Request) (storefront.Event, error) {
		return storefront.CheckoutOpened(), nil
	})
}

// CheckoutField reports one shipping field. mode "blur" (the default) validates and
// records the outcome; "input" only clears an error once the value becomes valid.
func CheckoutField(svc StorefrontService, logg *logger.Logger) http.HandlerFunc {
	return dispatch(svc, logg, func(r *http.Request) (storefront.Event, error) {
		name := chi.URLParam(r, "field")
		field, ok := shipping.ParseField(name)
		if !ok {
			return storefront.Event{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown shipping field").WithDetails(map[string]any{"field": name})
		}
		var payload fieldRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			return storefront.Event{}, err
		}
		if payload.Mode == "input" {
			return storefront.FieldChanged(field, payload.Value), nil
		}
		return storefront.FieldBlurred(field, payload.Value), nil
	})
}

func CheckoutShipping(svc StorefrontService, logg *logger.Logger) http.HandlerFunc {
	return dispatch(svc, logg, func(r *http.Request) (storefront.Event, error) {
		var payload shipping.Info
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			return storefront.Event{}, err
		}
		return storefront.ShippingSubmitted(payload.Values()), nil
	})
}

func CheckoutBack(svc StorefrontService, logg *logger.Logger) http.HandlerFunc {
	return dispatch(svc, logg, func(r *http.Request) (storefront.Event, error) {
		return storefront.BackToShipping(), nil
	})
}

func CheckoutPlaceOrder(svc StorefrontService, logg *logger.Logger) http.HandlerFunc {
	return dispatch(svc, logg, func(r *http.Request) (storefront.Event, error) {
		return storefront.OrderPlaced(), nil
	})
}

func CheckoutContinue(svc StorefrontService, logg *logger.Logger) http.HandlerFunc {
	return dispatch(svc, logg, func(r *http.Request) (storefront.Event, error) {
		return storefront.ContinueShopping(), nil
	})
}

func dispatch(svc StorefrontService, logg *logger.Logger, decode func(r *http.Request) (storefront.Event, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "storefront unavailable"))
			return
		}

		ev, err := decode(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, applied, err := svc.Handle(r.Context(), ev)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, storefrontResponse{Applied: applied, View: view})
	}
}
