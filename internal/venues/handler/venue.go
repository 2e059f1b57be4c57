package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"venuely/internal/venues/service"
	"venuely/pkg/config"
	apperrors "venuely/pkg/errors"
	httputil "venuely/pkg/http"
	"venuely/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type VenueHandler struct {
	venues    service.VenueService
	resources service.ResourceService
	cfg       *config.Config
}

func NewVenueHandler(venues service.VenueService, resources service.ResourceService, cfg *config.Config) *VenueHandler {
	return &VenueHandler{
		venues:    venues,
		resources: resources,
		cfg:       cfg,
	}
}

func (h *VenueHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/venues", h.Create)
	router.GET("/api/v1/venues", h.GetAll)
	router.GET("/api/v1/venues/search", h.Search)
	router.GET("/api/v1/venues/owner/:ownerID", h.GetByOwner)
	router.GET("/api/v1/venues/id/:id", h.GetByID)
	router.PATCH("/api/v1/venues/id/:id", h.Update)
	router.DELETE("/api/v1/venues/id/:id", h.Delete)

	router.POST("/api/v1/venues/id/:id/resources/:kind", h.CreateResource)
	router.GET("/api/v1/venues/id/:id/resources/:kind", h.ListResources)
	router.GET("/api/v1/venues/id/:id/resources/:kind/:resourceID", h.GetResource)
	router.PATCH("/api/v1/venues/id/:id/resources/:kind/:resourceID", h.UpdateResource)
	router.DELETE("/api/v1/venues/id/:id/resources/:kind/:resourceID", h.DeleteResource)
	router.POST("/api/v1/venues/id/:id/resources/:kind/:resourceID/activate", h.ActivateResource)
	router.POST("/api/v1/venues/id/:id/resources/:kind/:resourceID/deactivate", h.DeactivateResource)

	// cross-venue lookup used by the reservations service
	router.GET("/api/v1/resources/:kind/:id", h.GetResourceByID)
}

func (h *VenueHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var venue model.Venue
	if err := json.NewDecoder(r.Body).Decode(&venue); err != nil {
		httputil.WriteError(w, apperrors.InvalidInput("Invalid JSON in request body"))
		return
	}

	if err := h.venues.Create(r.Context(), &venue); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, venue)
}

func (h *VenueHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	venues, total, err := h.venues.GetAll(r.Context(), limit, offset)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WritePaginated(w, venues, total, limit, int(offset))
}

func (h *VenueHandler) Search(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	var cities []string
	if raw := r.URL.Query().Get("cities"); raw != "" {
		cities = strings.Split(raw, ",")
	}

	venues, err := h.venues.Search(r.Context(), cities, r.URL.Query().Get("type"), limit, offset)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WritePaginated(w, venues, int64(len(venues)), limit, int(offset))
}

func (h *VenueHandler) GetByOwner(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	venues, err := h.venues.GetByOwner(r.Context(), ps.ByName("ownerID"), limit, offset)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WritePaginated(w, venues, int64(len(venues)), limit, int(offset))
}

func (h *VenueHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	venue, err := h.venues.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, venue)
}

func (h *VenueHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var updates model.VenueUpdate
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		httputil.WriteError(w, apperrors.InvalidInput("Invalid JSON in request body"))
		return
	}

	id := ps.ByName("id")
	if err := h.venues.Update(r.Context(), id, &updates); err != nil {
		httputil.WriteError(w, err)
		return
	}

	venue, err := h.venues.GetByID(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, venue)
}

func (h *VenueHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.venues.Delete(r.Context(), ps.ByName("id")); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *VenueHandler) CreateResource(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	kind := model.ResourceKind(ps.ByName("kind"))

	resource, err := decodeResourceBody(r, kind)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.resources.Create(r.Context(), ps.ByName("id"), resource); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, resource)
}

func (h *VenueHandler) ListResources(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	kind := model.ResourceKind(ps.ByName("kind"))
	resources, total, err := h.resources.ListByVenue(r.Context(), ps.ByName("id"), kind, limit, offset)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WritePaginated(w, resources, total, limit, int(offset))
}

func (h *VenueHandler) GetResource(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	kind := model.ResourceKind(ps.ByName("kind"))
	resource, err := h.resources.GetByID(r.Context(), kind, ps.ByName("resourceID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if resource.VenueRef() != ps.ByName("id") {
		httputil.WriteError(w, apperrors.NotFoundWithID("Resource", ps.ByName("resourceID")))
		return
	}

	httputil.WriteSuccess(w, resource)
}

func (h *VenueHandler) UpdateResource(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	kind := model.ResourceKind(ps.ByName("kind"))

	updates, err := decodeResourceUpdateBody(r, kind)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	resource, err := h.resources.Update(r.Context(), kind, ps.ByName("resourceID"), updates)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, resource)
}

func (h *VenueHandler) ActivateResource(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	h.setActive(w, r, ps, true)
}

func (h *VenueHandler) DeactivateResource(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	h.setActive(w, r, ps, false)
}

func (h *VenueHandler) setActive(w http.ResponseWriter, r *http.Request, ps httprouter.Params, active bool) {
	kind := model.ResourceKind(ps.ByName("kind"))
	if err := h.resources.SetActive(r.Context(), kind, ps.ByName("resourceID"), active); err != nil {
		httputil.WriteError(w, err)
		return
	}

	resource, err := h.resources.GetByID(r.Context(), kind, ps.ByName("resourceID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, resource)
}

func (h *VenueHandler) DeleteResource(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	kind := model.ResourceKind(ps.ByName("kind"))
	if err := h.resources.Delete(r.Context(), kind, ps.ByName("resourceID")); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *VenueHandler) GetResourceByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	kind := model.ResourceKind(ps.ByName("kind"))
	resource, err := h.resources.GetByID(r.Context(), kind, ps.ByName("id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, resource)
}

func decodeResourceBody(r *http.Request, kind model.ResourceKind) (model.ReservableResource, error) {
	switch kind {
	case model.KindSportsFacility:
		var facility model.SportsFacility
		if err := json.NewDecoder(r.Body).Decode(&facility); err != nil {
			return nil, apperrors.InvalidInput("Invalid JSON in request body")
		}
		return &facility, nil
	case model.KindHotelRoom:
		var room model.HotelRoom
		if err := json.NewDecoder(r.Body).Decode(&room); err != nil {
			return nil, apperrors.InvalidInput("Invalid JSON in request body")
		}
		return &room, nil
	case model.KindRestaurantTable:
		var table model.RestaurantTable
		if err := json.NewDecoder(r.Body).Decode(&table); err != nil {
			return nil, apperrors.InvalidInput("Invalid JSON in request body")
		}
		return &table, nil
	}
	return nil, apperrors.InvalidInput(fmt.Sprintf("unknown resource kind: %s", kind))
}

func decodeResourceUpdateBody(r *http.Request, kind model.ResourceKind) (any, error) {
	switch kind {
	case model.KindSportsFacility:
		var updates model.SportsFacilityUpdate
		if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
			return nil, apperrors.InvalidInput("Invalid JSON in request body")
		}
		return &updates, nil
	case model.KindHotelRoom:
		var updates model.HotelRoomUpdate
		if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
			return nil, apperrors.InvalidInput("Invalid JSON in request body")
		}
		return &updates, nil
	case model.KindRestaurantTable:
		var updates model.RestaurantTableUpdate
		if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
			return nil, apperrors.InvalidInput("Invalid JSON in request body")
		}
		return &updates, nil
	}
	return nil, apperrors.InvalidInput(fmt.Sprintf("unknown resource kind: %s", kind))
}
