package handler

import (
	"encoding/json"
	"net/http"
	"time"
	"venuely/internal/reservations/service"
	"venuely/pkg/config"
	apperrors "venuely/pkg/errors"
	httputil "venuely/pkg/http"
	"venuely/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type ReservationHandler struct {
	service service.ReservationService
	cfg     *config.Config
}

func NewReservationHandler(svc service.ReservationService, cfg *config.Config) *ReservationHandler {
	return &ReservationHandler{
		service: svc,
		cfg:     cfg,
	}
}

func (h *ReservationHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/reservations", h.Create)
	router.GET("/api/v1/reservations/id/:id", h.GetByID)
	router.PATCH("/api/v1/reservations/id/:id", h.Update)
	router.DELETE("/api/v1/reservations/id/:id", h.Delete)
	router.POST("/api/v1/reservations/id/:id/confirm", h.Confirm)
	router.POST("/api/v1/reservations/id/:id/cancel", h.Cancel)
	router.POST("/api/v1/reservations/id/:id/complete", h.Complete)
	router.GET("/api/v1/reservations/code/:code", h.GetByConfirmationCode)
	router.GET("/api/v1/reservations/user/:userID", h.GetByUser)
	router.GET("/api/v1/reservations/venue/:venueID", h.SearchByVenue)
	router.GET("/api/v1/reservations/resource/:kind/:id", h.SearchByResource)
	router.GET("/api/v1/reservations/resource/:kind/:id/availability", h.CheckAvailability)
}

func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var reservation model.Reservation
	if err := json.NewDecoder(r.Body).Decode(&reservation); err != nil {
		httputil.WriteError(w, apperrors.InvalidInput("Invalid JSON in request body"))
		return
	}

	if err := h.service.Create(r.Context(), &reservation); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, reservation)
}

func (h *ReservationHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	reservation, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, reservation)
}

func (h *ReservationHandler) GetByConfirmationCode(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	reservation, err := h.service.GetByConfirmationCode(r.Context(), ps.ByName("code"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, reservation)
}

func (h *ReservationHandler) GetByUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	reservations, total, err := h.service.GetByUser(r.Context(), ps.ByName("userID"), limit, offset)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WritePaginated(w, reservations, total, limit, int(offset))
}

func (h *ReservationHandler) SearchByVenue(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	from, to, err := extractTimeWindow(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	reservations, total, err := h.service.SearchByVenue(r.Context(), ps.ByName("venueID"), from, to, limit, offset)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WritePaginated(w, reservations, total, limit, int(offset))
}

func (h *ReservationHandler) SearchByResource(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	from, to, err := extractTimeWindow(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	kind := model.ResourceKind(ps.ByName("kind"))
	reservations, total, err := h.service.SearchByResource(r.Context(), kind, ps.ByName("id"), from, to, limit, offset)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WritePaginated(w, reservations, total, limit, int(offset))
}

// CheckAvailability answers a pre-booking probe. start_time is required,
// end_time optional (the resource's default duration fills it in).
func (h *ReservationHandler) CheckAvailability(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	start, err := httputil.ExtractTimeParam(r, "start_time")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if start.IsZero() {
		httputil.WriteError(w, apperrors.InvalidInput("start_time query parameter is required"))
		return
	}

	end, err := httputil.ExtractTimeParam(r, "end_time")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	kind := model.ResourceKind(ps.ByName("kind"))
	result, err := h.service.CheckAvailability(r.Context(), kind, ps.ByName("id"), start, end)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, result)
}

func (h *ReservationHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var updates model.ReservationUpdate
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		httputil.WriteError(w, apperrors.InvalidInput("Invalid JSON in request body"))
		return
	}

	id := ps.ByName("id")
	if err := h.service.Update(r.Context(), id, &updates); err != nil {
		httputil.WriteError(w, err)
		return
	}

	reservation, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, reservation)
}

func (h *ReservationHandler) Confirm(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	reservation, err := h.service.Confirm(r.Context(), ps.ByName("id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, reservation)
}

func (h *ReservationHandler) Cancel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var body struct {
		Reason string `json:"reason"`
	}
	// body is optional; a bare cancel carries no reason
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			httputil.WriteError(w, apperrors.InvalidInput("Invalid JSON in request body"))
			return
		}
	}

	reservation, err := h.service.Cancel(r.Context(), ps.ByName("id"), body.Reason)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, reservation)
}

func (h *ReservationHandler) Complete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	reservation, err := h.service.Complete(r.Context(), ps.ByName("id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, reservation)
}

func (h *ReservationHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

func extractTimeWindow(r *http.Request) (*time.Time, *time.Time, error) {
	from, err := httputil.ExtractTimeParam(r, "from")
	if err != nil {
		return nil, nil, err
	}
	to, err := httputil.ExtractTimeParam(r, "to")
	if err != nil {
		return nil, nil, err
	}

	var fromPtr, toPtr *time.Time
	if !from.IsZero() {
		fromPtr = &from
	}
	if !to.IsZero() {
		toPtr = &to
	}
	return fromPtr, toPtr, nil
}
