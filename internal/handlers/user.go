package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"github.com/daybook-app/daybook/internal/logging"
	"github.com/daybook-app/daybook/internal/models"
	"github.com/daybook-app/daybook/internal/services"
)

// UserHandler serves the user-by-id endpoints. All of them require the
// caller to act on their own id; there is no admin capability.
type UserHandler struct {
	userService services.UserServiceInterface
	authService services.AuthServiceInterface
}

func NewUserHandler(userService services.UserServiceInterface, authService services.AuthServiceInterface) *UserHandler {
	return &UserHandler{
		userService: userService,
		authService: authService,
	}
}

// requireSelf parses the path id and checks it against the authenticated
// caller. Returns uuid.Nil after writing the response on failure.
func (h *UserHandler) requireSelf(w http.ResponseWriter, r *http.Request) uuid.UUID {
	pathID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return uuid.Nil
	}

	userID := GetUserIDFromContext(r.Context())
	if pathID != userID {
		writeError(w, http.StatusForbidden, "You can only act on your own account")
		return uuid.Nil
	}

	return pathID
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := h.requireSelf(w, r)
	if userID == uuid.Nil {
		return
	}

	user, err := h.userService.GetByID(r.Context(), userID)
	if errors.Is(err, services.ErrUserNotFound) {
		writeError(w, http.StatusNotFound, "Requested user does not exist")
		return
	}
	if err != nil {
		logging.Error("Failed to get user", map[string]interface{}{"error": err.Error()})
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := h.requireSelf(w, r)
	if userID == uuid.Nil {
		return
	}

	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	params := models.UpdateUserParams{Name: req.Name}

	if req.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*req.Email))
		if _, err := mail.ParseAddress(email); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid email address")
			return
		}
		params.Email = &email
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		writeError(w, http.StatusBadRequest, "Name cannot be empty")
		return
	}

	if req.Password != nil {
		if *req.Password == "" {
			writeError(w, http.StatusBadRequest, "Password cannot be empty")
			return
		}
		hash, err := h.authService.HashPassword(*req.Password)
		if err != nil {
			if errors.Is(err, services.ErrPasswordTooLong) {
				writeError(w, http.StatusBadRequest, "Password is too long")
				return
			}
			logging.Error("Failed to hash password", map[string]interface{}{"error": err.Error()})
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		params.PasswordHash = &hash
	}

	user, err := h.userService.Update(r.Context(), userID, params)
	if errors.Is(err, services.ErrUserNotFound) {
		writeError(w, http.StatusNotFound, "Requested user does not exist")
		return
	}
	if errors.Is(err, services.ErrEmailAlreadyExists) {
		writeError(w, http.StatusBadRequest, "Email already registered")
		return
	}
	if err != nil {
		logging.Error("Failed to update user", map[string]interface{}{"error": err.Error()})
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := h.requireSelf(w, r)
	if userID == uuid.Nil {
		return
	}

	user, err := h.userService.Delete(r.Context(), userID)
	if errors.Is(err, services.ErrUserNotFound) {
		writeError(w, http.StatusNotFound, "Requested user does not exist")
		return
	}
	if err != nil {
		logging.Error("Failed to delete user", map[string]interface{}{"error": err.Error()})
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, user)
}
