package login

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"

	"github.com/jonwraymond/authgate/observe"
	"github.com/jonwraymond/authgate/resilience"
	"github.com/jonwraymond/authgate/token"
	"github.com/jonwraymond/authgate/userstore"
)

// Options carries the handlers' optional wiring. A nil Limiter disables
// throttling; nil observability fields default to no-ops.
type Options struct {
	Limiter *resilience.KeyedLimiter
	Audit   *observe.Audit
	Logger  observe.Logger
}

// Handlers serves the login and refresh endpoints.
type Handlers struct {
	store   userstore.Store
	tokens  *token.Service
	limiter *resilience.KeyedLimiter
	audit   *observe.Audit
	logger  observe.Logger
}

// NewHandlers creates the endpoint handlers.
func NewHandlers(store userstore.Store, tokens *token.Service, opts Options) (*Handlers, error) {
	if store == nil {
		return nil, errors.New("login: user store is required")
	}
	if tokens == nil {
		return nil, errors.New("login: token service is required")
	}

	h := &Handlers{
		store:   store,
		tokens:  tokens,
		limiter: opts.Limiter,
		audit:   opts.Audit,
		logger:  opts.Logger,
	}
	if h.audit == nil {
		h.audit = observe.NewAudit(nil)
	}
	if h.logger == nil {
		h.logger = observe.NoopLogger()
	}
	return h, nil
}

// response is the uniform envelope for all endpoints.
type response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// loginData is the payload of a successful login.
type loginData struct {
	User         *userstore.User `json:"user"`
	AccessToken  string          `json:"accessToken"`
	RefreshToken string          `json:"refreshToken"`
	ExpiresIn    string          `json:"expiresIn"`
}

// refreshData is the payload of a successful refresh.
type refreshData struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   string `json:"expiresIn"`
}

// EmailLogin authenticates an email/password pair and returns a token pair.
func (h *Handlers) EmailLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Email == "" || body.Password == "" {
		writeJSON(w, http.StatusBadRequest, response{Message: "email and password are required"})
		return
	}

	h.passwordLogin(w, r, body.Email, body.Password, "email", func() (*userstore.User, error) {
		return h.store.FindByEmail(r.Context(), body.Email)
	})
}

// PhoneLogin authenticates a phone/password pair and returns a token pair.
func (h *Handlers) PhoneLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Phone    string `json:"phone"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Phone == "" || body.Password == "" {
		writeJSON(w, http.StatusBadRequest, response{Message: "phone and password are required"})
		return
	}

	h.passwordLogin(w, r, body.Phone, body.Password, "phone", func() (*userstore.User, error) {
		return h.store.FindByPhone(r.Context(), body.Phone)
	})
}

func (h *Handlers) passwordLogin(w http.ResponseWriter, r *http.Request, identifier, password, loginType string, find func() (*userstore.User, error)) {
	ctx := r.Context()

	if h.limiter != nil && !h.limiter.Allow(identifier) {
		h.logger.Warn(ctx, "login throttled",
			observe.Field{Key: "loginType", Value: loginType},
		)
		writeJSON(w, http.StatusTooManyRequests, response{Message: "too many attempts, try again later"})
		return
	}

	user, err := find()
	if err != nil && !errors.Is(err, userstore.ErrNotFound) {
		writeJSON(w, http.StatusInternalServerError, response{Message: "login failed"})
		return
	}
	// The same rejection for an unknown identifier and a wrong password:
	// responses must not reveal which accounts exist.
	if user == nil || !userstore.VerifyPassword(password, user.PasswordHash) {
		writeJSON(w, http.StatusUnauthorized, response{Message: "invalid " + loginType + " or password"})
		return
	}

	if err := h.store.RecordLogin(ctx, user.ID, clientIP(r)); err != nil {
		writeJSON(w, http.StatusInternalServerError, response{Message: "login failed"})
		return
	}

	pair, err := h.tokens.Login(ctx, token.Claims{
		UserID: user.ID,
		Email:  user.Email,
		Phone:  user.Phone,
		Role:   user.Role,
	})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, response{Message: "login failed"})
		return
	}

	if h.limiter != nil {
		h.limiter.Forget(identifier)
	}
	h.audit.UserAction(ctx, user.ID, "login",
		observe.Field{Key: "loginType", Value: loginType},
		observe.Field{Key: "ip", Value: clientIP(r)},
	)

	user.PasswordHash = ""
	writeJSON(w, http.StatusOK, response{
		Success: true,
		Message: "login successful",
		Data: loginData{
			User:         user,
			AccessToken:  pair.AccessToken,
			RefreshToken: pair.RefreshToken,
			ExpiresIn:    pair.ExpiresIn,
		},
	})
}

// Refresh exchanges a valid refresh token for a new access token.
func (h *Handlers) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var body struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.RefreshToken == "" {
		writeJSON(w, http.StatusBadRequest, response{Message: "refreshToken is required"})
		return
	}

	access, err := h.tokens.Refresh(ctx, body.RefreshToken)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, response{Message: "refresh token invalid or expired"})
		return
	}

	if claims := h.tokens.Codec().DecodeUnsafe(access); claims != nil {
		h.audit.UserAction(ctx, claims.UserID, "token_refresh")
	}

	writeJSON(w, http.StatusOK, response{
		Success: true,
		Message: "token refreshed",
		Data: refreshData{
			AccessToken: access,
			ExpiresIn:   h.tokens.ExpiresIn(),
		},
	})
}

// Register mounts the endpoints on a mux under the conventional paths.
func (h *Handlers) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /app/user/login/email", h.EmailLogin)
	mux.HandleFunc("POST /app/user/login/phone", h.PhoneLogin)
	mux.HandleFunc("POST /app/user/refresh", h.Refresh)
}

func writeJSON(w http.ResponseWriter, status int, body response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// clientIP extracts the peer address without the port.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
