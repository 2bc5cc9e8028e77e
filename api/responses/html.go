package responses

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/angelmondragon/mahalaxmi-storefront/internal/cart"
	"github.com/angelmondragon/mahalaxmi-storefront/internal/session"
	pkgerrors "github.com/angelmondragon/mahalaxmi-storefront/pkg/errors"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/logger"
)

const sessionExpiredNotice = "Your session has expired. Please log in again."

type renderer interface {
	Render(w io.Writer, name string, data any) error
}

type flashQueue interface {
	Add(ctx context.Context, sessionID string, kind session.FlashKind, message string) error
	Pop(ctx context.Context, sessionID string) ([]session.Flash, error)
}

type credentialClearer interface {
	ClearUnauthorized(ctx context.Context, sessionID string) error
}

type cartSnapshots interface {
	Current(ctx context.Context, sessionID string) (cart.Snapshot, error)
}

// Refresh asks the browser to navigate after a delay.
type Refresh struct {
	Seconds int
	URL     string
}

// Page is what every template receives. Render fills in the shared fields.
type Page struct {
	Title     string
	SiteName  string
	Path      string
	User      *session.User
	CartCount int
	Flashes   []session.Flash
	Refresh   *Refresh
	Data      any
}

// ErrorPage is the data of the error template.
type ErrorPage struct {
	Status  int
	Message string
}

// Responder renders pages and turns errors into what the shopper sees.
type Responder struct {
	views    renderer
	flashes  flashQueue
	auth     credentialClearer
	carts    cartSnapshots
	logg     *logger.Logger
	siteName string
}

// ResponderParams groups the responder collaborators.
type ResponderParams struct {
	Views    renderer
	Flashes  flashQueue
	Auth     credentialClearer
	Carts    cartSnapshots
	Logger   *logger.Logger
	SiteName string
}

func NewResponder(p ResponderParams) (*Responder, error) {
	if p.Views == nil {
		return nil, fmt.Errorf("views are required")
	}
	if p.Flashes == nil {
		return nil, fmt.Errorf("flash queue is required")
	}
	if p.Auth == nil {
		return nil, fmt.Errorf("auth store is required")
	}
	logg := p.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &Responder{
		views:    p.Views,
		flashes:  p.Flashes,
		auth:     p.Auth,
		carts:    p.Carts,
		logg:     logg,
		siteName: p.SiteName,
	}, nil
}

// Render writes a full page.
func (rs *Responder) Render(w http.ResponseWriter, r *http.Request, status int, name string, page Page) {
	ctx := r.Context()
	state := session.FromContext(ctx)

	page.SiteName = rs.siteName
	page.Path = r.URL.Path
	page.User = state.User()
	if state.SessionID != "" {
		flashes, err := rs.flashes.Pop(ctx, state.SessionID)
		if err != nil {
			rs.logg.Warn(rs.logg.WithField(ctx, "error", err.Error()), "flash.pop_failed")
		}
		page.Flashes = flashes
		if state.Authenticated() && rs.carts != nil {
			if snap, err := rs.carts.Current(ctx, state.SessionID); err == nil {
				page.CartCount = snap.ItemCount()
			}
		}
	}

	var buf bytes.Buffer
	if err := rs.views.Render(&buf, name, page); err != nil {
		rs.logg.Error(rs.logg.WithField(ctx, "template", name), "render.failed", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// Redirect answers a form post with 303 See Other.
func (rs *Responder) Redirect(w http.ResponseWriter, r *http.Request, target string) {
	http.Redirect(w, r, safeTarget(target), http.StatusSeeOther)
}

// Notice queues a flash for the next rendered page.
func (rs *Responder) Notice(r *http.Request, kind session.FlashKind, message string) {
	state := session.FromContext(r.Context())
	if state.SessionID == "" || message == "" {
		return
	}
	if err := rs.flashes.Add(r.Context(), state.SessionID, kind, message); err != nil {
		rs.logg.Warn(rs.logg.WithField(r.Context(), "error", err.Error()), "flash.add_failed")
	}
}

// Fail handles an error raised by a user action. Unauthorized ends the session and
// goes to /login; Forbidden goes home; everything else flashes a notice and
// redirects to back with state unchanged.
func (rs *Responder) Fail(w http.ResponseWriter, r *http.Request, err error, back string) {
	if rs.handleSessionOutcome(w, r, err) {
		return
	}
	rs.Notice(r, session.FlashError, PublicMessage(err))
	rs.Redirect(w, r, back)
}

// FailBack is Fail returning to the current path.
func (rs *Responder) FailBack(w http.ResponseWriter, r *http.Request, err error) {
	rs.Fail(w, r, err, r.URL.Path)
}

// FailPage handles an error raised while loading a page by rendering the error page.
func (rs *Responder) FailPage(w http.ResponseWriter, r *http.Request, err error) {
	if rs.handleSessionOutcome(w, r, err) {
		return
	}
	meta := pkgerrors.MetadataFor(normalize(err).Code())
	rs.Render(w, r, meta.HTTPStatus, "error", Page{
		Title: http.StatusText(meta.HTTPStatus),
		Data:  ErrorPage{Status: meta.HTTPStatus, Message: PublicMessage(err)},
	})
}

// NotFound renders the 404 page for unknown routes.
func (rs *Responder) NotFound(w http.ResponseWriter, r *http.Request) {
	rs.Render(w, r, http.StatusNotFound, "error", Page{
		Title: "Not Found",
		Data:  ErrorPage{Status: http.StatusNotFound, Message: "The page you are looking for does not exist."},
	})
}

// ForceLogout clears the session's credentials and sends the browser to /login.
func (rs *Responder) ForceLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	state := session.FromContext(ctx)
	if state.SessionID != "" {
		if err := rs.auth.ClearUnauthorized(ctx, state.SessionID); err != nil {
			rs.logg.Error(ctx, "session.clear_failed", err)
		}
	}
	rs.Notice(r, session.FlashError, sessionExpiredNotice)
	rs.Redirect(w, r, "/login")
}

func (rs *Responder) handleSessionOutcome(w http.ResponseWriter, r *http.Request, err error) bool {
	logError(r.Context(), rs.logg, err)
	switch pkgerrors.MetadataFor(normalize(err).Code()).Outcome {
	case pkgerrors.OutcomeForceLogout:
		rs.ForceLogout(w, r)
		return true
	case pkgerrors.OutcomeRedirectHome:
		rs.Redirect(w, r, "/")
		return true
	}
	return false
}

// safeTarget keeps redirects on this site.
func safeTarget(target string) string {
	if target == "" {
		return "/"
	}
	u, err := url.Parse(target)
	if err != nil || u.IsAbs() || u.Host != "" || !strings.HasPrefix(u.Path, "/") || strings.HasPrefix(target, "//") {
		return "/"
	}
	return target
}

// SiteName is the store name shown in the header.
func (rs *Responder) SiteName() string {
	return rs.siteName
}
