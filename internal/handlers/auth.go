package handlers

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"

	"cattery/internal/auth"
	"cattery/internal/middleware"
	"cattery/internal/store"
)

// Auth serves login, token verification and TOTP enrollment. It needs the
// relational tier: without a database there are no accounts, and the auth
// endpoints answer 503.
type Auth struct {
	users  *store.UserStore
	secret []byte
	ttl    time.Duration
	issuer string
}

// NewAuth creates the auth handler group. users may be nil when the
// relational tier is disabled.
func NewAuth(users *store.UserStore, secret []byte) *Auth {
	return &Auth{
		users:  users,
		secret: secret,
		ttl:    auth.TokenTTL,
		issuer: "Cattery Admin",
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	TOTPCode string `json:"totpCode,omitempty"`
}

// Login checks credentials (and the TOTP code when the account has 2FA
// enabled) and issues a signed token.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	if h.users == nil {
		writeError(w, http.StatusServiceUnavailable, "Authentication requires the database backend.")
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	user, err := h.users.FindByUsername(req.Username)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Login failed.")
		return
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "Invalid username or password.")
		return
	}

	if user.TOTPEnabled {
		if user.TOTPSecret == nil || !auth.ValidateTOTP(req.TOTPCode, *user.TOTPSecret) {
			writeError(w, http.StatusUnauthorized, "Invalid two-factor code.")
			return
		}
	}

	token, err := auth.GenerateToken(user.ID.String(), user.Username, user.Role, h.secret, h.ttl)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Login failed.")
		return
	}

	writeData(w, map[string]any{
		"token": token,
		"user": map[string]any{
			"id":       user.ID,
			"username": user.Username,
			"name":     user.DisplayName,
			"role":     user.Role,
		},
	})
}

// Verify confirms the caller's token is still valid and echoes its identity.
func (h *Auth) Verify(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}
	writeData(w, map[string]any{
		"id":       claims.UserID,
		"username": claims.Username,
		"role":     claims.Role,
	})
}

// TOTPSetup generates a fresh TOTP secret for the caller and returns the
// provisioning URL plus a QR code. The secret is stored but 2FA stays off
// until the first code is confirmed via TOTPEnable.
func (h *Auth) TOTPSetup(w http.ResponseWriter, r *http.Request) {
	if h.users == nil {
		writeError(w, http.StatusServiceUnavailable, "Authentication requires the database backend.")
		return
	}
	claims := middleware.ClaimsFromCtx(r.Context())

	user, err := h.users.FindByUsername(claims.Username)
	if err != nil || user == nil {
		writeError(w, http.StatusInternalServerError, "Account lookup failed.")
		return
	}

	key, err := auth.GenerateTOTPKey(h.issuer, user.Username)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not generate two-factor secret.")
		return
	}
	if err := h.users.SetTOTPSecret(user.ID, key.Secret); err != nil {
		writeError(w, http.StatusInternalServerError, "Could not store two-factor secret.")
		return
	}

	writeData(w, map[string]any{
		"secret": key.Secret,
		"url":    key.URL,
		"qrPng":  base64.StdEncoding.EncodeToString(key.QRPNG),
	})
}

type totpEnableRequest struct {
	Code string `json:"code"`
}

// TOTPEnable verifies the first code against the stored secret and turns
// two-factor on for the account.
func (h *Auth) TOTPEnable(w http.ResponseWriter, r *http.Request) {
	if h.users == nil {
		writeError(w, http.StatusServiceUnavailable, "Authentication requires the database backend.")
		return
	}
	claims := middleware.ClaimsFromCtx(r.Context())

	var req totpEnableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	user, err := h.users.FindByUsername(claims.Username)
	if err != nil || user == nil {
		writeError(w, http.StatusInternalServerError, "Account lookup failed.")
		return
	}
	if user.TOTPSecret == nil {
		writeError(w, http.StatusBadRequest, "Run two-factor setup first.")
		return
	}
	if !auth.ValidateTOTP(req.Code, *user.TOTPSecret) {
		writeError(w, http.StatusUnauthorized, "Invalid two-factor code.")
		return
	}
	if err := h.users.EnableTOTP(user.ID); err != nil {
		writeError(w, http.StatusInternalServerError, "Could not enable two-factor.")
		return
	}

	writeData(w, map[string]any{"totpEnabled": true})
}
