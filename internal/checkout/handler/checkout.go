package handler

import (
	"encoding/json"
	"net/http"

	"stayhub/internal/checkout/service"
	apperrors "stayhub/pkg/errors"
	httputil "stayhub/pkg/http"
	"stayhub/pkg/logger"
	"stayhub/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type CheckoutHandler struct {
	service service.CheckoutService
	log     *logger.Logger
}

func NewCheckoutHandler(service service.CheckoutService, log *logger.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
		log:     log,
	}
}

// Quote prices a stay without creating anything on the payment provider.
// The stay is passed as query parameters so the endpoint stays cacheable.
func (h *CheckoutHandler) Quote(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()
	req := &model.CheckoutRequest{
		PropertyID: query.Get("property_id"),
		CheckIn:    query.Get("check_in"),
		CheckOut:   query.Get("check_out"),
	}

	breakdown, err := h.service.Quote(r.Context(), req)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Quote", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, breakdown); err != nil {
		h.log.Error("failed to write success response", "handler", "Quote", "operation", "WriteSuccess", "error", err)
	}
}

func (h *CheckoutHandler) CreateSession(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "CreateSession", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	handle, err := h.service.CreateSession(r.Context(), &req)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "CreateSession", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, handle); err != nil {
		h.log.Error("failed to write created response", "handler", "CreateSession", "operation", "WriteCreated", "error", err)
	}
}

func (h *CheckoutHandler) SessionStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	status, err := h.service.SessionStatus(r.Context(), id)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "SessionStatus", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, status); err != nil {
		h.log.Error("failed to write success response", "handler", "SessionStatus", "operation", "WriteSuccess", "error", err)
	}
}

func (h *CheckoutHandler) BillingPortal(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	customerID := r.URL.Query().Get("customer_id")
	if customerID == "" {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("customer_id query parameter is required")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "BillingPortal", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	portal, err := h.service.PortalURL(r.Context(), customerID)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "BillingPortal", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, portal); err != nil {
		h.log.Error("failed to write success response", "handler", "BillingPortal", "operation", "WriteSuccess", "error", err)
	}
}

func (h *CheckoutHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/checkout/quote", h.Quote)
	router.POST("/api/v1/checkout/sessions", h.CreateSession)
	router.GET("/api/v1/checkout/sessions/:id", h.SessionStatus)
	router.GET("/api/v1/billing/portal", h.BillingPortal)
}
