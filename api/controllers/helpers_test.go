package controllers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/mahalaxmi-storefront/api/responses"
	"github.com/angelmondragon/mahalaxmi-storefront/internal/apiclient"
	"github.com/angelmondragon/mahalaxmi-storefront/internal/auth"
	"github.com/angelmondragon/mahalaxmi-storefront/internal/cart"
	"github.com/angelmondragon/mahalaxmi-storefront/internal/checkout"
	"github.com/angelmondragon/mahalaxmi-storefront/internal/orders"
	"github.com/angelmondragon/mahalaxmi-storefront/internal/session"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/enums"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/logger"
)

const testSID = "2b1f0c7e-5f4c-4b8a-9d7e-0d6f3c2a1b90"

// recordingViews keeps the last rendered page so tests can inspect the data handed to templates.
type recordingViews struct {
	name string
	page responses.Page
}

func (v *recordingViews) Render(w io.Writer, name string, data any) error {
	v.name = name
	v.page = data.(responses.Page)
	_, err := io.WriteString(w, "<main>"+v.page.Title+"</main>")
	return err
}

type memFlashes struct {
	queued map[string][]session.Flash
}

func (f *memFlashes) Add(_ context.Context, sid string, kind session.FlashKind, msg string) error {
	f.queued[sid] = append(f.queued[sid], session.Flash{Kind: kind, Message: msg})
	return nil
}

func (f *memFlashes) Pop(_ context.Context, sid string) ([]session.Flash, error) {
	out := f.queued[sid]
	delete(f.queued, sid)
	return out, nil
}

func (f *memFlashes) messages(sid string) []string {
	var out []string
	for _, fl := range f.queued[sid] {
		out = append(out, fl.Message)
	}
	return out
}

type fakeAuthStore struct {
	loggedIn   []auth.AuthResponse
	registered []auth.AuthResponse
	updated    []auth.User
	loggedOut  []string
	cleared    []string
	err        error
}

func (f *fakeAuthStore) Login(_ context.Context, sid string, resp auth.AuthResponse) (session.State, error) {
	if f.err != nil {
		return session.State{SessionID: sid}, f.err
	}
	f.loggedIn = append(f.loggedIn, resp)
	return session.State{SessionID: sid, Credentials: &session.Credentials{Token: resp.Token}}, nil
}

func (f *fakeAuthStore) Register(_ context.Context, sid string, resp auth.AuthResponse) (session.State, error) {
	if f.err != nil {
		return session.State{SessionID: sid}, f.err
	}
	f.registered = append(f.registered, resp)
	return session.State{SessionID: sid, Credentials: &session.Credentials{Token: resp.Token}}, nil
}

func (f *fakeAuthStore) UpdateUser(_ context.Context, state session.State, user auth.User) (session.State, error) {
	f.updated = append(f.updated, user)
	return state, nil
}

func (f *fakeAuthStore) Logout(_ context.Context, sid string) error {
	f.loggedOut = append(f.loggedOut, sid)
	return nil
}

func (f *fakeAuthStore) ClearUnauthorized(_ context.Context, sid string) error {
	f.cleared = append(f.cleared, sid)
	return nil
}

type fakeCartStore struct {
	snap       cart.Snapshot
	err        error
	fetchErr   error
	fetchToken string
	calls      []string
	forgotten  []string
	added      addCall
}

type addCall struct {
	productID       int64
	quantity, stock int
}

func (f *fakeCartStore) result(call string) (cart.Snapshot, error) {
	f.calls = append(f.calls, call)
	if f.err != nil {
		return cart.Snapshot{}, f.err
	}
	return f.snap, nil
}

func (f *fakeCartStore) Current(context.Context, string) (cart.Snapshot, error) {
	return f.snap, nil
}

func (f *fakeCartStore) Fetch(ctx context.Context, _ string) (cart.Snapshot, error) {
	f.calls = append(f.calls, "fetch")
	f.fetchToken, _ = apiclient.TokenFromContext(ctx)
	if f.fetchErr != nil {
		return cart.Snapshot{}, f.fetchErr
	}
	return f.snap, nil
}

func (f *fakeCartStore) Add(_ context.Context, _ string, productID int64, quantity, stock int) (cart.Snapshot, error) {
	f.added = addCall{productID: productID, quantity: quantity, stock: stock}
	return f.result("add")
}

func (f *fakeCartStore) Update(context.Context, string, int64, int) (cart.Snapshot, error) {
	return f.result("update")
}

func (f *fakeCartStore) Remove(context.Context, string, int64) (cart.Snapshot, error) {
	return f.result("remove")
}

func (f *fakeCartStore) Clear(context.Context, string) (cart.Snapshot, error) {
	return f.result("clear")
}

func (f *fakeCartStore) Forget(_ context.Context, sid string) error {
	f.forgotten = append(f.forgotten, sid)
	return nil
}

type fakeDrafts struct {
	drafts  map[string]checkout.Draft
	saveErr error
	resets  int
}

func newFakeDrafts() *fakeDrafts {
	return &fakeDrafts{drafts: map[string]checkout.Draft{}}
}

func (f *fakeDrafts) Load(_ context.Context, sid string) (checkout.Draft, error) {
	if d, ok := f.drafts[sid]; ok {
		return d, nil
	}
	return checkout.NewDraft(), nil
}

func (f *fakeDrafts) Save(_ context.Context, sid string, d checkout.Draft) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.drafts[sid] = d
	return nil
}

func (f *fakeDrafts) Reset(_ context.Context, sid string) error {
	f.resets++
	delete(f.drafts, sid)
	return nil
}

type fakePlacer struct {
	draft    checkout.Draft
	order    *orders.Order
	err      error
	method   enums.PaymentMethod
	subtotal decimal.Decimal
	calls    int
}

func (f *fakePlacer) Place(_ context.Context, _ string, draft checkout.Draft, method enums.PaymentMethod, subtotal decimal.Decimal) (checkout.Draft, *orders.Order, error) {
	f.calls++
	f.method = method
	f.subtotal = subtotal
	if f.draft.Step == 0 {
		return draft, f.order, f.err
	}
	return f.draft, f.order, f.err
}

type harness struct {
	rs      *responses.Responder
	views   *recordingViews
	flashes *memFlashes
	auth    *fakeAuthStore
	carts   *fakeCartStore
	logg    *logger.Logger
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		views:   &recordingViews{},
		flashes: &memFlashes{queued: map[string][]session.Flash{}},
		auth:    &fakeAuthStore{},
		carts:   &fakeCartStore{},
		logg:    logger.Nop(),
	}
	rs, err := responses.NewResponder(responses.ResponderParams{
		Views:    h.views,
		Flashes:  h.flashes,
		Auth:     h.auth,
		Carts:    h.carts,
		Logger:   h.logg,
		SiteName: "Mahalaxmi Enterprise",
	})
	require.NoError(t, err)
	h.rs = rs
	return h
}

func anonymous() session.State {
	return session.State{SessionID: testSID}
}

func signedIn(role enums.Role) session.State {
	return session.State{
		SessionID: testSID,
		Credentials: &session.Credentials{
			Token: "token",
			User:  session.User{ID: 7, Email: "asha@example.com", FirstName: "Asha", LastName: "Rao", Role: role},
		},
	}
}

func getRequest(target string, state session.State) *http.Request {
	r := httptest.NewRequest(http.MethodGet, target, nil)
	return r.WithContext(session.WithState(r.Context(), state))
}

func postRequest(target string, form url.Values, state session.State) *http.Request {
	r := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r.WithContext(session.WithState(r.Context(), state))
}

func withParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		rctx = chi.NewRouteContext()
	}
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func serve(h http.HandlerFunc, r *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	return rec
}
