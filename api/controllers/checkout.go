package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/mahalaxmi-storefront/api/responses"
	"github.com/angelmondragon/mahalaxmi-storefront/api/validators"
	"github.com/angelmondragon/mahalaxmi-storefront/internal/cart"
	"github.com/angelmondragon/mahalaxmi-storefront/internal/checkout"
	"github.com/angelmondragon/mahalaxmi-storefront/internal/orders"
	"github.com/angelmondragon/mahalaxmi-storefront/internal/session"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/enums"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/logger"
)

const (
	confirmationPath = "/checkout/confirmation"
	ordersTabPath    = "/profile?tab=orders"
)

type checkoutPage struct {
	Steps           []checkout.Step
	Draft           checkout.Draft
	Errors          map[string]string
	ShippingOptions []checkout.ShippingOption
	PaymentMethods  []enums.PaymentMethod
	Cart            cart.View
	Quote           checkout.Quote
}

func renderCheckout(rs *responses.Responder, w http.ResponseWriter, r *http.Request, status int, draft checkout.Draft, snap cart.Snapshot, errs map[string]string) {
	subtotal := subtotalOf(snap)
	if errs == nil {
		errs = map[string]string{}
	}
	rs.Render(w, r, status, "checkout", responses.Page{
		Title: "Checkout",
		Data: checkoutPage{
			Steps:           checkout.Steps(),
			Draft:           draft,
			Errors:          errs,
			ShippingOptions: checkout.ShippingOptions(subtotal),
			PaymentMethods:  enums.PaymentMethods(),
			Cart:            cart.NewView(snap.Cart),
			Quote:           draft.Quote(subtotal),
		},
	})
}

func subtotalOf(snap cart.Snapshot) decimal.Decimal {
	if snap.Cart == nil {
		return decimal.Zero
	}
	return snap.Cart.Total
}

// checkoutCart returns the stored snapshot, fetching from the backend when none is stored.
func checkoutCart(ctx context.Context, carts cartStore, sid string) (cart.Snapshot, error) {
	snap, err := carts.Current(ctx, sid)
	if err == nil && !snap.Cart.Empty() {
		return snap, nil
	}
	return carts.Fetch(ctx, sid)
}

// CheckoutPage renders the current step of the session's checkout draft.
func CheckoutPage(rs *responses.Responder, drafts draftStore, carts cartStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sid := sessionID(r)
		draft, err := drafts.Load(ctx, sid)
		if err != nil {
			rs.FailPage(w, r, err)
			return
		}
		if draft.Confirmed() {
			rs.Redirect(w, r, confirmationPath)
			return
		}
		snap, err := carts.Fetch(ctx, sid)
		if err != nil {
			if handledBySession(err) {
				rs.FailPage(w, r, err)
				return
			}
			if snap, err = carts.Current(ctx, sid); err != nil {
				rs.FailPage(w, r, err)
				return
			}
		}
		if snap.Cart.Empty() {
			rs.Notice(r, session.FlashInfo, "Your cart is empty")
			rs.Redirect(w, r, "/cart")
			return
		}
		renderCheckout(rs, w, r, http.StatusOK, draft, snap, nil)
	}
}

// CheckoutShipping submits the address step. Field problems re-render the step without
// calling the backend.
func CheckoutShipping(rs *responses.Responder, drafts draftStore, carts cartStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sid := sessionID(r)
		draft, err := drafts.Load(ctx, sid)
		if err != nil {
			rs.Fail(w, r, err, "/checkout")
			return
		}
		snap, err := checkoutCart(ctx, carts, sid)
		if err != nil {
			rs.Fail(w, r, err, "/checkout")
			return
		}

		addr := orders.ShippingAddress{
			Street:     validators.FormString(r, "street"),
			City:       validators.FormString(r, "city"),
			State:      validators.FormString(r, "state"),
			PostalCode: validators.FormString(r, "postalCode"),
			Country:    validators.FormString(r, "country"),
		}
		method := enums.ShippingMethod(validators.FormString(r, "shippingMethod"))

		next, err := draft.SubmitShipping(addr, method, subtotalOf(snap))
		if errors.Is(err, checkout.ErrConfirmed) {
			rs.Redirect(w, r, confirmationPath)
			return
		}
		if saveErr := drafts.Save(ctx, sid, next); saveErr != nil {
			rs.Fail(w, r, saveErr, "/checkout")
			return
		}
		if err != nil {
			renderCheckout(rs, w, r, http.StatusUnprocessableEntity, next, snap, fieldErrors(err))
			return
		}
		rs.Redirect(w, r, "/checkout")
	}
}

// CheckoutBack returns from payment to the shipping step.
func CheckoutBack(rs *responses.Responder, drafts draftStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sid := sessionID(r)
		draft, err := drafts.Load(ctx, sid)
		if err != nil {
			rs.Fail(w, r, err, "/checkout")
			return
		}
		if err := drafts.Save(ctx, sid, draft.Back()); err != nil {
			rs.Fail(w, r, err, "/checkout")
			return
		}
		rs.Redirect(w, r, "/checkout")
	}
}

// CheckoutPlace submits the order. A backend failure keeps the payment step open with
// the error shown so the shopper can submit again.
func CheckoutPlace(rs *responses.Responder, drafts draftStore, carts cartStore, flow orderPlacer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sid := sessionID(r)
		draft, err := drafts.Load(ctx, sid)
		if err != nil {
			rs.Fail(w, r, err, "/checkout")
			return
		}
		draft.Notes = validators.FormText(r, "notes")
		method := enums.PaymentMethod(validators.FormString(r, "paymentMethod"))
		if draft.Confirmed() {
			rs.Redirect(w, r, confirmationPath)
			return
		}

		snap, err := checkoutCart(ctx, carts, sid)
		if err != nil {
			rs.Fail(w, r, err, "/checkout")
			return
		}
		subtotal := subtotalOf(snap)

		if _, err := draft.ReadyToPlace(method, subtotal); err != nil {
			if draft.Step != checkout.StepPayment {
				rs.Fail(w, r, err, "/checkout")
				return
			}
			renderCheckout(rs, w, r, http.StatusUnprocessableEntity, draft, snap, fieldErrors(err))
			return
		}

		_, order, err := flow.Place(ctx, sid, draft, method, subtotal)
		if order != nil {
			if err != nil {
				logg.Error(ctx, "checkout.confirm_save_failed", err)
				rs.Redirect(w, r, confirmationPath+"?"+url.Values{"order": {order.OrderNumber}}.Encode())
				return
			}
			rs.Redirect(w, r, confirmationPath)
			return
		}
		if handledBySession(err) {
			rs.Fail(w, r, err, "/checkout")
			return
		}
		rs.Redirect(w, r, "/checkout")
	}
}

type confirmationPage struct {
	OrderNumber string
	Seconds     int
	Next        string
}

// CheckoutConfirmation shows the placed order number once and then sends the browser
// to the orders tab. Viewing it consumes the confirmed draft.
func CheckoutConfirmation(rs *responses.Responder, drafts draftStore, delay time.Duration, logg *logger.Logger) http.HandlerFunc {
	seconds := int(delay.Seconds())
	if seconds < 1 {
		seconds = 3
	}
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sid := sessionID(r)
		draft, err := drafts.Load(ctx, sid)
		if err != nil {
			rs.FailPage(w, r, err)
			return
		}

		number := draft.OrderNumber
		if draft.Confirmed() {
			if err := drafts.Reset(ctx, sid); err != nil {
				logg.Error(ctx, "checkout.reset_failed", err)
			}
		} else {
			number = validators.SanitizeString(r.URL.Query().Get("order"), 64)
			if number == "" {
				rs.Redirect(w, r, "/cart")
				return
			}
		}

		rs.Render(w, r, http.StatusOK, "confirmation", responses.Page{
			Title:   "Order placed",
			Refresh: &responses.Refresh{Seconds: seconds, URL: ordersTabPath},
			Data:    confirmationPage{OrderNumber: number, Seconds: seconds, Next: ordersTabPath},
		})
	}
}
