package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/rs/zerolog/log"

	"github.com/cadastro-api/cadastro-be/internal/auth"
	"github.com/cadastro-api/cadastro-be/internal/cpf"
	"github.com/cadastro-api/cadastro-be/internal/router"
	"github.com/cadastro-api/cadastro-be/internal/services"
)

// UserHandler handles HTTP requests for user registration, authentication
// and management.
type UserHandler struct {
	service services.UserServiceProvider
	issuer  *auth.TokenIssuer
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service services.UserServiceProvider, issuer *auth.TokenIssuer) *UserHandler {
	return &UserHandler{service: service, issuer: issuer}
}

// RegisterPayload defines the structure for registration requests.
type RegisterPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	CPF      string `json:"cpf"`
}

// Validate checks that every registration field is present.
func (p RegisterPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required),
		validation.Field(&p.Email, validation.Required),
		validation.Field(&p.Password, validation.Required),
		validation.Field(&p.CPF, validation.Required),
	)
}

// LoginPayload defines the structure for login requests. Either email or cpf
// identifies the account.
type LoginPayload struct {
	Email    string `json:"email"`
	CPF      string `json:"cpf"`
	Password string `json:"password"`
}

// UpdatePayload defines the structure for update requests. Nil fields keep
// their stored value.
type UpdatePayload struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// Register handles new user registration.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload RegisterPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := payload.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	normalized := cpf.Normalize(payload.CPF)
	if !cpf.IsValid(normalized) {
		http.Error(w, "Invalid CPF", http.StatusBadRequest)
		return
	}

	_, err := h.service.Create(r.Context(), payload.Name, payload.Email, payload.Password, normalized)
	if errors.Is(err, services.ErrDuplicateUser) {
		http.Error(w, "Email or CPF already registered", http.StatusBadRequest)
		return
	}
	if err != nil {
		log.Error().Err(err).Str("email", payload.Email).Msg("Failed to register user")
		http.Error(w, "Failed to register user", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// Login handles user authentication and token issuance.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if (payload.Email == "" && payload.CPF == "") || payload.Password == "" {
		http.Error(w, "Missing credentials", http.StatusBadRequest)
		return
	}

	normalized := ""
	if payload.CPF != "" {
		normalized = cpf.Normalize(payload.CPF)
		if !cpf.IsValid(normalized) {
			http.Error(w, "Invalid CPF", http.StatusBadRequest)
			return
		}
	}

	user, err := h.service.Authenticate(r.Context(), payload.Email, normalized, payload.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		log.Warn().Str("email", payload.Email).Msg("Failed authentication attempt")
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("Failed to authenticate user")
		http.Error(w, "Failed to authenticate user", http.StatusInternalServerError)
		return
	}

	token, err := h.issuer.Issue(user.ID)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to generate token")
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"token": token})
}

// Get handles retrieving a user by their ID.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := router.Param(r, "id")
	if id == "" {
		http.Error(w, "Missing user id", http.StatusBadRequest)
		return
	}

	user, err := h.service.GetByID(r.Context(), id)
	if errors.Is(err, services.ErrUserNotFound) {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Error().Err(err).Str("user_id", id).Msg("Failed to get user")
		http.Error(w, "Failed to get user", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}

// Update handles partial updates of a user's name, email or password.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := router.Param(r, "id")

	var payload UpdatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if payload.Name == nil && payload.Email == nil && payload.Password == nil {
		http.Error(w, "No fields to update", http.StatusBadRequest)
		return
	}

	err := h.service.Update(r.Context(), id, payload.Name, payload.Email, payload.Password)
	if errors.Is(err, services.ErrUserNotFound) {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Error().Err(err).Str("user_id", id).Msg("Failed to update user")
		http.Error(w, "Failed to update user", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// Delete handles the permanent deletion of a user account.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := router.Param(r, "id")

	err := h.service.Delete(r.Context(), id)
	if errors.Is(err, services.ErrUserNotFound) {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Error().Err(err).Str("user_id", id).Msg("Failed to delete user")
		http.Error(w, "Failed to delete user", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// List handles listing every registered user.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list users")
		http.Error(w, "Failed to list users", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(users)
}
