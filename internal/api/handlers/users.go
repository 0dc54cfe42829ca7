package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stockfolio/portfolio-tracker-backend/internal/api/request"
	"github.com/stockfolio/portfolio-tracker-backend/internal/api/response"
	"github.com/stockfolio/portfolio-tracker-backend/internal/apperrors"
	"github.com/stockfolio/portfolio-tracker-backend/internal/model"
	"github.com/stockfolio/portfolio-tracker-backend/internal/service"
	"github.com/stockfolio/portfolio-tracker-backend/internal/validation"
)

// UserHandler handles HTTP requests for user endpoints.
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new UserHandler with the provided service dependency.
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// UserResponse represents a user in API responses. The password and API key
// never leave the server; HasAPIKey only reports whether one is stored.
type UserResponse struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	HasAPIKey bool   `json:"hasApiKey"`
}

func userResponseFromUser(u model.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		HasAPIKey: u.APIKey != "",
	}
}

// SaveUser handles POST requests to create or update a user.
//
// Endpoint: POST /users
// Response: 201 Created with UserResponse
// Error: 400 Bad Request if validation fails, 500 Internal Server Error otherwise
func (h *UserHandler) SaveUser(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.SaveUserRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateSaveUser(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	user, err := h.userService.SaveUser(req)
	if err != nil {
		log.Printf("failed to save user: %v", err)
		response.RespondError(w, http.StatusInternalServerError, "failed to save user", nil)
		return
	}

	response.RespondJSON(w, http.StatusCreated, userResponseFromUser(user))
}

// AllUsers handles GET requests for the user listing.
//
// Endpoint: GET /users
// Response: 200 OK with array of UserResponse
func (h *UserHandler) AllUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.GetAllUsers()
	if err != nil {
		log.Printf("failed to list users: %v", err)
		response.RespondJSON(w, http.StatusOK, []UserResponse{})
		return
	}

	resp := make([]UserResponse, len(users))
	for i, user := range users {
		resp[i] = userResponseFromUser(user)
	}

	response.RespondJSON(w, http.StatusOK, resp)
}

// GetUserByID handles GET requests for a single user.
//
// Endpoint: GET /users/{id}
// Response: 200 OK with UserResponse
// Error: 404 Not Found if the user does not exist
func (h *UserHandler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	userID, err := idParam(r, "id")
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid ID format", err.Error())
		return
	}

	user, err := h.userService.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrUserNotFound.Error(), nil)
			return
		}
		log.Printf("failed to retrieve user %d: %v", userID, err)
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveUser.Error(), nil)
		return
	}

	response.RespondJSON(w, http.StatusOK, userResponseFromUser(user))
}

// GetUserByUsername handles GET requests for a single user by username.
//
// Endpoint: GET /users/username/{username}
// Response: 200 OK with UserResponse
// Error: 404 Not Found if the username is unknown
func (h *UserHandler) GetUserByUsername(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	user, err := h.userService.GetUserByUsername(username)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrUserNotFound.Error(), nil)
			return
		}
		log.Printf("failed to retrieve user %s: %v", username, err)
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveUser.Error(), nil)
		return
	}

	response.RespondJSON(w, http.StatusOK, userResponseFromUser(user))
}

// DeleteUserByID handles DELETE requests for a user by ID.
//
// Endpoint: DELETE /users/{id}
// Response: 204 No Content
// Error: 404 Not Found if the user does not exist
func (h *UserHandler) DeleteUserByID(w http.ResponseWriter, r *http.Request) {
	userID, err := idParam(r, "id")
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid ID format", err.Error())
		return
	}

	if err := h.userService.DeleteUserByID(userID); err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrUserNotFound.Error(), nil)
			return
		}
		log.Printf("failed to delete user %d: %v", userID, err)
		response.RespondError(w, http.StatusInternalServerError, "failed to delete user", nil)
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// DeleteUserByUsername handles DELETE requests for a user by username.
// Deleting an unknown username succeeds without touching the store.
//
// Endpoint: DELETE /users/username/{username}
// Response: 204 No Content
func (h *UserHandler) DeleteUserByUsername(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	if err := h.userService.DeleteUserByUsername(username); err != nil {
		log.Printf("failed to delete user %s: %v", username, err)
		response.RespondError(w, http.StatusInternalServerError, "failed to delete user", nil)
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
