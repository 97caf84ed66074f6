package reminder

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tallyhq/tally/internal/ledger"
	"github.com/tallyhq/tally/pkg/middleware"
	"github.com/tallyhq/tally/pkg/response"
	"github.com/tallyhq/tally/pkg/validate"
)

// SendReminderRequest represents the request to nudge a debtor
type SendReminderRequest struct {
	TransactionID string `json:"transaction_id" validate:"required,uuid"`
}

// Handler handles HTTP requests for reminders
type Handler struct {
	service *Service
}

// NewHandler creates a new reminder handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for reminder endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Send)

	return r
}

// Send handles POST /reminders
func (h *Handler) Send(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing caller identity")
		return
	}

	var req SendReminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if fieldErrors := validate.Struct(&req); fieldErrors != nil {
		response.ValidationFailed(w, fieldErrors)
		return
	}

	transactionID, err := uuid.Parse(req.TransactionID)
	if err != nil {
		response.BadRequest(w, "Invalid transaction ID")
		return
	}

	if err := h.service.Send(r.Context(), callerID, transactionID); err != nil {
		switch {
		case errors.Is(err, ledger.ErrTransactionNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ledger.ErrNotCreditor):
			response.Forbidden(w, err.Error())
		case errors.Is(err, ErrTooSoon):
			response.TooManyRequests(w, err.Error())
		default:
			response.InternalError(w, "Failed to send reminder")
		}
		return
	}

	response.JSON(w, http.StatusAccepted, map[string]string{"message": "Reminder queued"})
}
