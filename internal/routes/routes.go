package routes

import (
	"errors"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"strings"
	"time"

	structValidator "github.com/go-playground/validator/v10"

	"github.com/haguru/torii/internal/apperrors"
	"github.com/haguru/torii/internal/interfaces"
	"github.com/haguru/torii/internal/models/dto"
	"github.com/haguru/torii/pkg/clientip"
)

// Route holds the handlers for the whole HTTP surface: localized landing
// pages, the login/register forms, the session-gated page, fixed external
// redirects and fallback file serving with the themed 404.
type Route struct {
	Metrics     interfaces.Metrics
	AuthService interfaces.AuthService
	Logger      interfaces.Logger
	Assets      fs.FS
	Redirects   map[string]string
	CookieName  string
	validator   *structValidator.Validate
}

// NewRoute creates a new Route instance.
func NewRoute(metrics interfaces.Metrics, authService interfaces.AuthService,
	logger interfaces.Logger, assets fs.FS, redirects map[string]string,
	cookieName string, validator *structValidator.Validate,
) *Route {
	return &Route{
		Metrics:     metrics,
		AuthService: authService,
		Logger:      logger,
		Assets:      assets,
		Redirects:   redirects,
		CookieName:  cookieName,
		validator:   validator,
	}
}

// Root redirects the bare origin to the English landing page.
func (r *Route) Root(w http.ResponseWriter, req *http.Request) {
	http.Redirect(w, req, LandingENRoute, http.StatusFound)
}

// LandingEN serves the English landing page.
func (r *Route) LandingEN(w http.ResponseWriter, req *http.Request) {
	r.servePage(w, req, LandingENPage)
}

// LandingAR serves the Arabic landing page.
func (r *Route) LandingAR(w http.ResponseWriter, req *http.Request) {
	r.servePage(w, req, LandingARPage)
}

// LoginPageHandler serves the login page unconditionally.
func (r *Route) LoginPageHandler(w http.ResponseWriter, req *http.Request) {
	r.servePage(w, req, LoginPage)
}

// RegisterPageHandler serves the register page unconditionally.
func (r *Route) RegisterPageHandler(w http.ResponseWriter, req *http.Request) {
	r.servePage(w, req, RegisterPage)
}

// Protected serves the gated page when the session cookie resolves to a
// user, and redirects to the login page otherwise.
func (r *Route) Protected(w http.ResponseWriter, req *http.Request) {
	if _, ok := r.AuthService.ResolveSession(r.sessionToken(req)); !ok {
		http.Redirect(w, req, LoginPageRoute, http.StatusFound)
		return
	}
	r.servePage(w, req, ProtectedPage)
}

// Logout revokes the session if the cookie carries a known token, expires
// the cookie and redirects to the login page.
func (r *Route) Logout(w http.ResponseWriter, req *http.Request) {
	if token := r.sessionToken(req); token != "" {
		r.AuthService.Logout(token)
	}

	http.SetCookie(w, &http.Cookie{
		Name:    r.CookieName,
		Value:   "",
		Path:    "/",
		Expires: time.Unix(0, 0),
		MaxAge:  -1,
	})
	http.Redirect(w, req, LoginPageRoute, http.StatusFound)
}

// ExternalRedirect issues a method-preserving 307 to the external URL
// registered for the exact request path.
func (r *Route) ExternalRedirect(w http.ResponseWriter, req *http.Request) {
	target, ok := r.Redirects[req.URL.Path]
	if !ok {
		r.NotFound(w, req)
		return
	}
	http.Redirect(w, req, target, http.StatusTemporaryRedirect)
}

// RegisterForm handles user registration requests. The outcome is always a
// small HTML page with status 200; only storage failures break that rule.
func (r *Route) RegisterForm(w http.ResponseWriter, req *http.Request) {
	if r.Metrics != nil {
		r.Metrics.IncCounter(RegisterRequestsTotal)
	}

	form, err := r.credentialsForm(req)
	if err != nil {
		r.renderHTML(w, http.StatusOK, resultPage(MsgMissingField))
		if r.Metrics != nil {
			r.Metrics.IncCounter(RegisterErrorsTotal)
		}
		return
	}

	var startTime time.Time
	if r.Metrics != nil {
		startTime = time.Now()
	}

	err = r.AuthService.Register(req.Context(), form.Username, form.Password)
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		r.renderHTML(w, http.StatusOK, resultPage(MsgMissingField))
	case errors.Is(err, apperrors.ErrConflict):
		r.renderHTML(w, http.StatusOK, resultPage(MsgUsernameExists))
	case err != nil:
		r.Logger.Error("Register failed", "user", form.Username, "error", err)
		r.renderHTML(w, http.StatusInternalServerError, failurePage())
	default:
		r.renderHTML(w, http.StatusOK, resultPage(MsgRegistered))
	}

	if r.Metrics != nil {
		if err != nil {
			r.Metrics.IncCounter(RegisterErrorsTotal)
		} else {
			r.Metrics.IncCounter(RegisterSuccessTotal)
		}
		r.Metrics.ObserveHistogram(RegisterDurationSeconds, time.Since(startTime).Seconds())
	}
}

// LoginForm handles login requests. On success it sets the session cookie
// and returns the protected page content; on bad credentials it returns the
// failure page with status 401 and no cookie.
func (r *Route) LoginForm(w http.ResponseWriter, req *http.Request) {
	if r.Metrics != nil {
		r.Metrics.IncCounter(LoginRequestsTotal)
	}

	form, err := r.credentialsForm(req)
	if err != nil {
		r.renderHTML(w, http.StatusUnauthorized, loginFailedPage())
		if r.Metrics != nil {
			r.Metrics.IncCounter(LoginFailedTotal)
		}
		return
	}

	var startTime time.Time
	if r.Metrics != nil {
		startTime = time.Now()
	}

	token, err := r.AuthService.Login(req.Context(), form.Username, form.Password)
	if r.Metrics != nil {
		loginDuration := time.Since(startTime)
		defer func() {
			r.Metrics.ObserveHistogram(LoginDurationSeconds, loginDuration.Seconds())
		}()
	}

	if errors.Is(err, apperrors.ErrAuth) {
		r.renderHTML(w, http.StatusUnauthorized, loginFailedPage())
		if r.Metrics != nil {
			r.Metrics.IncCounter(LoginFailedTotal)
		}
		return
	}
	if err != nil {
		r.Logger.Error("Login failed", "user", form.Username, "error", err)
		r.renderHTML(w, http.StatusInternalServerError, failurePage())
		if r.Metrics != nil {
			r.Metrics.IncCounter(LoginFailedTotal)
		}
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     r.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	body, err := fs.ReadFile(r.Assets, ProtectedPage)
	if err != nil {
		r.Logger.Warn(ErrFailedToReadPage, "page", ProtectedPage, "error", err)
		r.renderHTML(w, http.StatusOK, welcomePage(form.Username))
	} else {
		w.Header().Set(ContentType, ContentTypeHTML)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(body)
	}

	if r.Metrics != nil {
		r.Metrics.IncCounter(LoginSuccessTotal)
	}
}

// Fallback serves any file under the site root, inferring the content type
// from the extension. Anything else funnels to the themed 404.
func (r *Route) Fallback(w http.ResponseWriter, req *http.Request) {
	name := strings.TrimPrefix(path.Clean(req.URL.Path), "/")
	if name == "" || name == "." || !fs.ValidPath(name) {
		r.NotFound(w, req)
		return
	}

	body, err := fs.ReadFile(r.Assets, name)
	if err != nil {
		r.NotFound(w, req)
		return
	}

	contentType := mime.TypeByExtension(path.Ext(name))
	if contentType == "" {
		contentType = http.DetectContentType(body)
	}
	w.Header().Set(ContentType, contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// NotFound writes the themed 404 page embedding the requester's IP and port.
func (r *Route) NotFound(w http.ResponseWriter, req *http.Request) {
	if r.Metrics != nil {
		r.Metrics.IncCounter(NotFoundTotal)
	}

	ip, port := clientip.FromRequest(req)
	r.Logger.Debug("Not found", "path", req.URL.Path, "ip", ip, "port", port)
	r.renderHTML(w, http.StatusNotFound, notFoundPage(ip, port))
}

// Healthz is the liveness probe.
func (r *Route) Healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(MsgHealthy))
}

// credentialsForm decodes and validates the posted username/password pair.
func (r *Route) credentialsForm(req *http.Request) (*dto.CredentialsFormDTO, error) {
	if err := req.ParseForm(); err != nil {
		r.Logger.Warn(ErrFailedToParseForm, "error", err)
		return nil, err
	}

	form := &dto.CredentialsFormDTO{
		Username: strings.TrimSpace(req.PostFormValue("username")),
		Password: strings.TrimSpace(req.PostFormValue("password")),
	}

	if err := r.validator.Struct(form); err != nil {
		return nil, err
	}

	return form, nil
}

// sessionToken extracts the session token from the request cookie.
func (r *Route) sessionToken(req *http.Request) string {
	cookie, err := req.Cookie(r.CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// servePage writes a fixed page from the site root, funneling a missing
// page to the themed 404.
func (r *Route) servePage(w http.ResponseWriter, req *http.Request, name string) {
	body, err := fs.ReadFile(r.Assets, name)
	if err != nil {
		r.Logger.Error(ErrFailedToReadPage, "page", name, "error", err)
		r.NotFound(w, req)
		return
	}
	w.Header().Set(ContentType, ContentTypeHTML)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// renderHTML writes an HTML body with the given status code.
func (r *Route) renderHTML(w http.ResponseWriter, status int, body string) {
	w.Header().Set(ContentType, ContentTypeHTML)
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
