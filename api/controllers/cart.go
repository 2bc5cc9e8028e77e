package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/angelmondragon/mahalaxmi-storefront/api/responses"
	"github.com/angelmondragon/mahalaxmi-storefront/api/validators"
	"github.com/angelmondragon/mahalaxmi-storefront/internal/cart"
	"github.com/angelmondragon/mahalaxmi-storefront/internal/products"
	"github.com/angelmondragon/mahalaxmi-storefront/internal/session"
)

const loginToAddNotice = "Please login to add items to cart"

type cartPage struct {
	View cart.View
}

// CartPage fetches the cart from the backend and renders it. A failed fetch keeps
// showing the last known snapshot with a notice.
func CartPage(rs *responses.Responder, carts cartStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sid := sessionID(r)
		snap, err := carts.Fetch(ctx, sid)
		if err != nil {
			if handledBySession(err) {
				rs.FailPage(w, r, err)
				return
			}
			rs.Notice(r, session.FlashError, "Failed to load cart")
			if snap, err = carts.Current(ctx, sid); err != nil {
				rs.FailPage(w, r, err)
				return
			}
		}
		rs.Render(w, r, http.StatusOK, "cart", responses.Page{
			Title: "Shopping cart",
			Data:  cartPage{View: cart.NewView(snap.Cart)},
		})
	}
}

// CartAdd adds a product from the detail page. Anonymous visitors stay on the product with a notice.
func CartAdd(rs *responses.Responder, carts cartStore, productSvc products.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		productID := validators.FormInt64(r, "productId")
		back := "/products"
		if productID > 0 {
			back = "/products/" + strconv.FormatInt(productID, 10)
		}

		state := currentState(r)
		if !state.Authenticated() {
			rs.Notice(r, session.FlashError, loginToAddNotice)
			rs.Redirect(w, r, back)
			return
		}
		if productID == 0 {
			rs.Redirect(w, r, back)
			return
		}

		product, err := productSvc.Get(ctx, productID)
		if err != nil {
			rs.Fail(w, r, err, back)
			return
		}
		quantity := validators.FormInt(r, "quantity", 1)
		if _, err := carts.Add(ctx, state.SessionID, product.ID, quantity, product.StockQuantity); err != nil {
			rs.Fail(w, r, err, back)
			return
		}
		rs.Notice(r, session.FlashSuccess, addedNotice(quantity))
		rs.Redirect(w, r, back)
	}
}

func addedNotice(quantity int) string {
	noun := "item"
	if quantity > 1 {
		noun = "items"
	}
	return fmt.Sprintf("Added %d %s to cart", quantity, noun)
}

// CartUpdate sets a line quantity from the stepper buttons.
func CartUpdate(rs *responses.Responder, carts cartStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, err := validators.PathID(r, "itemID")
		if err != nil {
			rs.Fail(w, r, err, "/cart")
			return
		}
		quantity := validators.FormInt(r, "quantity", 0)
		if _, err := carts.Update(r.Context(), sessionID(r), itemID, quantity); err != nil {
			rs.Fail(w, r, err, "/cart")
			return
		}
		rs.Redirect(w, r, "/cart")
	}
}

func CartRemove(rs *responses.Responder, carts cartStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, err := validators.PathID(r, "itemID")
		if err != nil {
			rs.Fail(w, r, err, "/cart")
			return
		}
		if _, err := carts.Remove(r.Context(), sessionID(r), itemID); err != nil {
			rs.Fail(w, r, err, "/cart")
			return
		}
		rs.Notice(r, session.FlashSuccess, "Item removed from cart")
		rs.Redirect(w, r, "/cart")
	}
}

func CartClear(rs *responses.Responder, carts cartStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := carts.Clear(r.Context(), sessionID(r)); err != nil {
			rs.Fail(w, r, err, "/cart")
			return
		}
		rs.Notice(r, session.FlashSuccess, "Cart cleared")
		rs.Redirect(w, r, "/cart")
	}
}
