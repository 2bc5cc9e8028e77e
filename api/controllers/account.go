package controllers

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/angelmondragon/mahalaxmi-storefront/api/responses"
	"github.com/angelmondragon/mahalaxmi-storefront/api/validators"
	"github.com/angelmondragon/mahalaxmi-storefront/internal/apiclient"
	"github.com/angelmondragon/mahalaxmi-storefront/internal/auth"
	"github.com/angelmondragon/mahalaxmi-storefront/internal/orders"
	"github.com/angelmondragon/mahalaxmi-storefront/internal/session"
	pkgerrors "github.com/angelmondragon/mahalaxmi-storefront/pkg/errors"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/logger"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/pagination"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/types"
	"github.com/angelmondragon/mahalaxmi-storefront/web"
)

const (
	invalidCredentials = "Invalid email or password"
	registrationFailed = "Registration failed. Please try again."
)

type loginPage struct {
	Email   string
	Errors  map[string]string
	Message string
}

func renderLogin(rs *responses.Responder, w http.ResponseWriter, r *http.Request, status int, data loginPage) {
	if data.Errors == nil {
		data.Errors = map[string]string{}
	}
	rs.Render(w, r, status, "login", responses.Page{Title: "Sign in", Data: data})
}

func LoginPage(rs *responses.Responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if currentState(r).Authenticated() {
			rs.Redirect(w, r, "/")
			return
		}
		renderLogin(rs, w, r, http.StatusOK, loginPage{})
	}
}

// Login exchanges the posted credentials for a backend token. A rejected login is shown
// on the form instead of going through the forced logout path.
func Login(rs *responses.Responder, authSvc auth.Service, store authStore, carts cartStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sid := sessionID(r)
		req := auth.LoginRequest{
			Email:    validators.FormString(r, "email"),
			Password: r.PostFormValue("password"),
		}
		if err := validators.Validate(req); err != nil {
			renderLogin(rs, w, r, http.StatusUnprocessableEntity, loginPage{Email: req.Email, Errors: fieldErrors(err)})
			return
		}

		resp, err := authSvc.Login(ctx, req)
		if err != nil {
			status, message := http.StatusUnauthorized, invalidCredentials
			switch codeOf(err) {
			case pkgerrors.CodeUnauthorized, pkgerrors.CodeValidation, pkgerrors.CodeNotFound:
			default:
				status, message = statusOf(err), responses.PublicMessage(err)
			}
			logg.Warn(logg.WithFields(ctx, map[string]any{"code": string(codeOf(err)), "error": err.Error()}), "auth.login_failed")
			renderLogin(rs, w, r, status, loginPage{Email: req.Email, Message: message})
			return
		}

		if err := carts.Forget(ctx, sid); err != nil {
			logg.Warn(logg.WithField(ctx, "error", err.Error()), "auth.cart_forget_failed")
		}
		state, err := store.Login(ctx, sid, *resp)
		if err != nil {
			logg.Error(ctx, "auth.session_store_failed", err)
			renderLogin(rs, w, r, statusOf(err), loginPage{Email: req.Email, Message: responses.PublicMessage(err)})
			return
		}
		loadCart(ctx, carts, state, logg)
		rs.Notice(r, session.FlashSuccess, "Welcome back!")
		rs.Redirect(w, r, "/")
	}
}

// registerForm is flat so eqfield can compare the two password inputs.
type registerForm struct {
	FirstName       string `json:"firstName" validate:"required,max=50"`
	LastName        string `json:"lastName" validate:"required,max=50"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone" validate:"omitempty,min=10,max=15"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

func (f registerForm) request() auth.RegisterRequest {
	return auth.RegisterRequest{
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Email:     f.Email,
		Password:  f.Password,
		Phone:     f.Phone,
	}
}

type registerPage struct {
	Form    registerForm
	Errors  map[string]string
	Message string
}

func renderRegister(rs *responses.Responder, w http.ResponseWriter, r *http.Request, status int, data registerPage) {
	if data.Errors == nil {
		data.Errors = map[string]string{}
	}
	data.Form.Password, data.Form.ConfirmPassword = "", ""
	rs.Render(w, r, status, "register", responses.Page{Title: "Create account", Data: data})
}

func RegisterPage(rs *responses.Responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if currentState(r).Authenticated() {
			rs.Redirect(w, r, "/")
			return
		}
		renderRegister(rs, w, r, http.StatusOK, registerPage{})
	}
}

// Register creates the account and signs the session in with the returned token.
func Register(rs *responses.Responder, authSvc auth.Service, store authStore, carts cartStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sid := sessionID(r)
		form := registerForm{
			FirstName:       validators.FormString(r, "firstName"),
			LastName:        validators.FormString(r, "lastName"),
			Email:           validators.FormString(r, "email"),
			Phone:           validators.FormString(r, "phone"),
			Password:        r.PostFormValue("password"),
			ConfirmPassword: r.PostFormValue("confirmPassword"),
		}
		if err := validators.Validate(form); err != nil {
			errs := fieldErrors(err)
			if _, ok := errs["confirmPassword"]; ok && form.ConfirmPassword != "" {
				errs["confirmPassword"] = "passwords do not match"
			}
			renderRegister(rs, w, r, http.StatusUnprocessableEntity, registerPage{Form: form, Errors: errs})
			return
		}

		resp, err := authSvc.Register(ctx, form.request())
		if err != nil {
			message := registrationFailed
			switch codeOf(err) {
			case pkgerrors.CodeConflict, pkgerrors.CodeValidation, pkgerrors.CodeRateLimit:
				message = responses.PublicMessage(err)
			}
			logg.Warn(logg.WithFields(ctx, map[string]any{"code": string(codeOf(err)), "error": err.Error()}), "auth.register_failed")
			renderRegister(rs, w, r, statusOf(err), registerPage{Form: form, Errors: fieldErrors(err), Message: message})
			return
		}

		if err := carts.Forget(ctx, sid); err != nil {
			logg.Warn(logg.WithField(ctx, "error", err.Error()), "auth.cart_forget_failed")
		}
		state, err := store.Register(ctx, sid, *resp)
		if err != nil {
			logg.Error(ctx, "auth.session_store_failed", err)
			renderRegister(rs, w, r, statusOf(err), registerPage{Form: form, Message: responses.PublicMessage(err)})
			return
		}
		loadCart(ctx, carts, state, logg)
		rs.Notice(r, session.FlashSuccess, "Welcome to "+rs.SiteName()+"!")
		rs.Redirect(w, r, "/")
	}
}

// loadCart fetches the signed-in cart so the header count is right on the first page.
// A failure only costs the count until the next cart request.
func loadCart(ctx context.Context, carts cartStore, state session.State, logg *logger.Logger) {
	if !state.Authenticated() {
		return
	}
	ctx = apiclient.WithToken(session.WithState(ctx, state), state.Token())
	if _, err := carts.Fetch(ctx, state.SessionID); err != nil {
		logg.Warn(logg.WithFields(ctx, map[string]any{"code": string(codeOf(err)), "error": err.Error()}), "auth.cart_fetch_failed")
	}
}

// Logout drops the stored credentials along with the cart snapshot and checkout draft.
func Logout(rs *responses.Responder, store authStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if err := store.Logout(ctx, sessionID(r)); err != nil {
			logg.Error(ctx, "auth.logout_failed", err)
		}
		rs.Notice(r, session.FlashSuccess, "Logged out successfully")
		rs.Redirect(w, r, "/")
	}
}

var profileTabs = []string{"profile", "orders", "addresses", "settings"}

func profileTab(raw string) string {
	raw = strings.ToLower(strings.TrimSpace(raw))
	for _, tab := range profileTabs {
		if tab == raw {
			return tab
		}
	}
	return profileTabs[0]
}

type profilePage struct {
	Tabs   []string
	Tab    string
	Form   auth.ProfileUpdate
	User   *session.User
	Errors map[string]string
	Orders *types.Page[orders.Order]
	Pager  web.Pager
}

func newProfilePage(state session.State, tab string) profilePage {
	data := profilePage{
		Tabs:   profileTabs,
		Tab:    tab,
		User:   state.User(),
		Errors: map[string]string{},
	}
	if data.User == nil {
		data.User = &session.User{}
	}
	data.Form = auth.ProfileUpdate{FirstName: data.User.FirstName, LastName: data.User.LastName}
	return data
}

// ProfilePage renders the account tabs. The orders tab pages through the user's orders.
func ProfilePage(rs *responses.Responder, orderSvc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		data := newProfilePage(currentState(r), profileTab(r.URL.Query().Get("tab")))

		if data.Tab == "orders" {
			page := validators.QueryPage(r)
			mine, err := orderSvc.Mine(ctx, pagination.Params{Page: page, Size: pagination.AdminPageSize})
			switch {
			case err == nil:
				data.Orders = mine
				data.Pager = web.Pager{
					Window: pagination.NewWindow(mine.Number, mine.TotalPages),
					Path:   "/profile",
					Query:  url.Values{"tab": {"orders"}},
				}
			case handledBySession(err):
				rs.FailPage(w, r, err)
				return
			default:
				logg.Warn(logg.WithField(ctx, "error", err.Error()), "profile.orders_failed")
				rs.Notice(r, session.FlashError, "Failed to load orders")
			}
		}

		rs.Render(w, r, http.StatusOK, "profile", responses.Page{Title: "My account", Data: data})
	}
}

// ProfileSave updates the name and phone, then refreshes the stored user.
func ProfileSave(rs *responses.Responder, authSvc auth.Service, store authStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		state := currentState(r)
		data := newProfilePage(state, "profile")
		data.Form = auth.ProfileUpdate{
			FirstName: validators.FormString(r, "firstName"),
			LastName:  validators.FormString(r, "lastName"),
			Phone:     validators.FormString(r, "phone"),
		}
		if err := validators.Validate(data.Form); err != nil {
			data.Errors = fieldErrors(err)
			rs.Render(w, r, http.StatusUnprocessableEntity, "profile", responses.Page{Title: "My account", Data: data})
			return
		}

		user, err := authSvc.UpdateProfile(ctx, data.Form)
		if err != nil {
			rs.Fail(w, r, err, "/profile")
			return
		}
		if _, err := store.UpdateUser(ctx, state, *user); err != nil {
			logg.Error(ctx, "profile.session_update_failed", err)
		}
		rs.Notice(r, session.FlashSuccess, "Profile updated successfully")
		rs.Redirect(w, r, "/profile")
	}
}

type contactSubject struct {
	Value string
	Label string
}

var contactSubjects = []contactSubject{
	{Value: "sales", Label: "Sales Inquiry"},
	{Value: "support", Label: "Technical Support"},
	{Value: "quote", Label: "Request a Quote"},
	{Value: "partnership", Label: "Partnership Opportunity"},
	{Value: "other", Label: "Other"},
}

type contactForm struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"omitempty,max=20"`
	Company string `json:"company" validate:"omitempty,max=100"`
	Subject string `json:"subject" validate:"required,oneof=sales support quote partnership other"`
	Message string `json:"message" validate:"required,max=2000"`
}

type contactPage struct {
	Sent     bool
	Form     contactForm
	Subjects []contactSubject
	Errors   map[string]string
}

func ContactPage(rs *responses.Responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rs.Render(w, r, http.StatusOK, "contact", responses.Page{
			Title: "Contact us",
			Data:  contactPage{Subjects: contactSubjects, Errors: map[string]string{}},
		})
	}
}

// Contact validates the enquiry and records it in the log. There is no backend endpoint
// for enquiries.
func Contact(rs *responses.Responder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		data := contactPage{
			Subjects: contactSubjects,
			Errors:   map[string]string{},
			Form: contactForm{
				Name:    validators.FormString(r, "name"),
				Email:   validators.FormString(r, "email"),
				Phone:   validators.FormString(r, "phone"),
				Company: validators.FormString(r, "company"),
				Subject: validators.FormString(r, "subject"),
				Message: validators.FormText(r, "message"),
			},
		}
		if err := validators.Validate(data.Form); err != nil {
			data.Errors = fieldErrors(err)
			rs.Render(w, r, http.StatusUnprocessableEntity, "contact", responses.Page{Title: "Contact us", Data: data})
			return
		}

		logg.Info(logg.WithFields(ctx, map[string]any{
			"contact_email":   data.Form.Email,
			"contact_subject": data.Form.Subject,
		}), "contact.received")
		data.Sent = true
		rs.Render(w, r, http.StatusOK, "contact", responses.Page{Title: "Contact us", Data: data})
	}
}
