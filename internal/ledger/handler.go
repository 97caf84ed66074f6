package ledger

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tallyhq/tally/pkg/middleware"
	"github.com/tallyhq/tally/pkg/response"
	"github.com/tallyhq/tally/pkg/validate"
)

// Handler handles HTTP requests for transaction operations
type Handler struct {
	service *Service
}

// NewHandler creates a new ledger handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for transaction endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/debts", h.ListDebts)
	r.Get("/credits", h.ListCredits)
	r.Get("/{id}", h.Get)
	r.Post("/{id}/settle", h.Settle)
	r.Post("/{id}/cancel", h.Cancel)

	return r
}

// Create handles POST /transactions
// @Summary      Create a transaction
// @Description  Record a new debt owed to the caller, mirrored as a credit
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        request body CreateTransactionRequest true "Transaction creation request"
// @Success      201 {object} response.APIResponse{data=TransactionResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      422 {object} response.APIResponse
// @Router       /transactions [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	creditorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing caller identity")
		return
	}

	var req CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if fieldErrors := validate.Struct(&req); fieldErrors != nil {
		response.ValidationFailed(w, fieldErrors)
		return
	}

	tx, err := h.service.Create(r.Context(), creditorID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrSelfTransaction),
			errors.Is(err, ErrNoItems),
			errors.Is(err, ErrNegativeAmount),
			errors.Is(err, ErrZeroTotal):
			response.BadRequest(w, err.Error())
		default:
			response.InternalError(w, "Failed to create transaction")
		}
		return
	}

	response.JSON(w, http.StatusCreated, tx.ToResponse())
}

// Get handles GET /transactions/{id}
// @Summary      Get a transaction
// @Description  Get a live transaction with its items; callable by either party
// @Tags         transactions
// @Produce      json
// @Param        id path string true "Transaction ID"
// @Success      200 {object} response.APIResponse{data=TransactionResponse}
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /transactions/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing caller identity")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid transaction ID")
		return
	}

	tx, err := h.service.Get(r.Context(), id, callerID)
	if err != nil {
		switch {
		case errors.Is(err, ErrTransactionNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrNotParticipant):
			response.Forbidden(w, err.Error())
		default:
			response.InternalError(w, "Failed to get transaction")
		}
		return
	}

	response.JSON(w, http.StatusOK, tx.ToResponse())
}

// ListDebts handles GET /transactions/debts
// @Summary      List live debts
// @Description  List the caller's live debts, oldest first
// @Tags         transactions
// @Produce      json
// @Success      200 {object} response.APIResponse{data=[]EntryResponse}
// @Router       /transactions/debts [get]
func (h *Handler) ListDebts(w http.ResponseWriter, r *http.Request) {
	h.listEntries(w, r, SideDebt)
}

// ListCredits handles GET /transactions/credits
// @Summary      List live credits
// @Description  List the caller's live credits, oldest first
// @Tags         transactions
// @Produce      json
// @Success      200 {object} response.APIResponse{data=[]EntryResponse}
// @Router       /transactions/credits [get]
func (h *Handler) ListCredits(w http.ResponseWriter, r *http.Request) {
	h.listEntries(w, r, SideCredit)
}

func (h *Handler) listEntries(w http.ResponseWriter, r *http.Request, side Side) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing caller identity")
		return
	}

	var entries []*Entry
	var err error
	if side == SideDebt {
		entries, err = h.service.ListDebts(r.Context(), userID)
	} else {
		entries, err = h.service.ListCredits(r.Context(), userID)
	}
	if err != nil {
		response.InternalError(w, "Failed to list entries")
		return
	}

	now := time.Now()
	entryResponses := make([]*EntryResponse, len(entries))
	for i, entry := range entries {
		entryResponses[i] = entry.ToResponse(now)
	}

	response.JSON(w, http.StatusOK, entryResponses)
}

// Settle handles POST /transactions/{id}/settle
// @Summary      Settle a transaction
// @Description  Debtor marks the transaction paid; both sides are archived and removed
// @Tags         transactions
// @Produce      json
// @Param        id path string true "Transaction ID"
// @Success      200 {object} response.APIResponse{data=ResolutionResponse}
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /transactions/{id}/settle [post]
func (h *Handler) Settle(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, RoleDebtor)
}

// Cancel handles POST /transactions/{id}/cancel
// @Summary      Cancel a transaction
// @Description  Creditor voids the transaction; both sides are archived and removed
// @Tags         transactions
// @Produce      json
// @Param        id path string true "Transaction ID"
// @Success      200 {object} response.APIResponse{data=ResolutionResponse}
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /transactions/{id}/cancel [post]
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, RoleCreditor)
}

func (h *Handler) resolve(w http.ResponseWriter, r *http.Request, role Role) {
	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing caller identity")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid transaction ID")
		return
	}

	records, err := h.service.Resolve(r.Context(), id, callerID, role)
	if err != nil {
		switch {
		case errors.Is(err, ErrTransactionNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrNotDebtor), errors.Is(err, ErrNotCreditor):
			response.Forbidden(w, err.Error())
		case errors.Is(err, ErrAlreadyResolved):
			response.Conflict(w, err.Error())
		default:
			response.InternalError(w, "Failed to resolve transaction")
		}
		return
	}

	response.JSON(w, http.StatusOK, NewResolutionResponse(records, callerID))
}
