package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/mahalaxmi-storefront/internal/auth"
	"github.com/angelmondragon/mahalaxmi-storefront/internal/cart"
	"github.com/angelmondragon/mahalaxmi-storefront/internal/checkout"
	"github.com/angelmondragon/mahalaxmi-storefront/internal/orders"
	"github.com/angelmondragon/mahalaxmi-storefront/internal/session"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/enums"
	pkgerrors "github.com/angelmondragon/mahalaxmi-storefront/pkg/errors"
)

type cartStore interface {
	Current(ctx context.Context, sessionID string) (cart.Snapshot, error)
	Fetch(ctx context.Context, sessionID string) (cart.Snapshot, error)
	Add(ctx context.Context, sessionID string, productID int64, quantity, stock int) (cart.Snapshot, error)
	Update(ctx context.Context, sessionID string, itemID int64, quantity int) (cart.Snapshot, error)
	Remove(ctx context.Context, sessionID string, itemID int64) (cart.Snapshot, error)
	Clear(ctx context.Context, sessionID string) (cart.Snapshot, error)
	Forget(ctx context.Context, sessionID string) error
}

type authStore interface {
	Login(ctx context.Context, sessionID string, resp auth.AuthResponse) (session.State, error)
	Register(ctx context.Context, sessionID string, resp auth.AuthResponse) (session.State, error)
	UpdateUser(ctx context.Context, state session.State, user auth.User) (session.State, error)
	Logout(ctx context.Context, sessionID string) error
}

type draftStore interface {
	Load(ctx context.Context, sessionID string) (checkout.Draft, error)
	Save(ctx context.Context, sessionID string, d checkout.Draft) error
	Reset(ctx context.Context, sessionID string) error
}

type orderPlacer interface {
	Place(ctx context.Context, sessionID string, draft checkout.Draft, method enums.PaymentMethod, subtotal decimal.Decimal) (checkout.Draft, *orders.Order, error)
}

func currentState(r *http.Request) session.State {
	return session.FromContext(r.Context())
}

func sessionID(r *http.Request) string {
	return currentState(r).SessionID
}

// fieldErrors returns the validation field messages of err, never nil so templates can index it.
func fieldErrors(err error) map[string]string {
	if typed := pkgerrors.As(err); typed != nil {
		if fields := typed.FieldErrors(); fields != nil {
			return fields
		}
	}
	return map[string]string{}
}

// handledBySession reports whether err ends the request by logging out or bouncing home.
func handledBySession(err error) bool {
	switch pkgerrors.MetadataFor(codeOf(err)).Outcome {
	case pkgerrors.OutcomeForceLogout, pkgerrors.OutcomeRedirectHome:
		return true
	}
	return false
}

func codeOf(err error) pkgerrors.Code {
	if typed := pkgerrors.As(err); typed != nil {
		return typed.Code()
	}
	return pkgerrors.CodeInternal
}

func statusOf(err error) int {
	return pkgerrors.MetadataFor(codeOf(err)).HTTPStatus
}

// hasRouteParam reports whether the matched route declares the named parameter.
func hasRouteParam(r *http.Request, name string) bool {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return false
	}
	for _, key := range rctx.URLParams.Keys {
		if key == name {
			return true
		}
	}
	return false
}
