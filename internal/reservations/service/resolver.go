package service

import (
	"context"
	"fmt"
	"net/http"
	"venuely/pkg/client"
	apperrors "venuely/pkg/errors"
	"venuely/pkg/model"
)

// ResourceResolver fetches the reservable resource a booking targets. The
// reservations service never reads the venues collections directly; it goes
// through the venues API like any other consumer.
type ResourceResolver interface {
	Resolve(ctx context.Context, kind model.ResourceKind, resourceID string) (model.ReservableResource, error)
}

type httpResourceResolver struct {
	venues *client.VenueClient
}

func NewHTTPResourceResolver(venues *client.VenueClient) ResourceResolver {
	return &httpResourceResolver{venues: venues}
}

func (r *httpResourceResolver) Resolve(ctx context.Context, kind model.ResourceKind, resourceID string) (model.ReservableResource, error) {
	if !kind.Valid() {
		return nil, apperrors.InvalidInput(fmt.Sprintf("unknown resource kind: %s", kind))
	}

	resp, err := r.venues.GetResourceByID(ctx, kind, resourceID)
	if err != nil {
		return nil, apperrors.Unavailable("venues service")
	}

	switch resp.StatusCode {
	case http.StatusOK:
		// fall through to decode
	case http.StatusNotFound:
		return nil, apperrors.NotFoundWithID("Resource", resourceID)
	default:
		return nil, apperrors.Internal(
			fmt.Sprintf("unexpected venues service response: %d", resp.StatusCode),
			fmt.Errorf("%s", client.GetErrorMessage(resp)),
		)
	}

	switch kind {
	case model.KindSportsFacility:
		return decodeResource[model.SportsFacility](resp)
	case model.KindHotelRoom:
		return decodeResource[model.HotelRoom](resp)
	case model.KindRestaurantTable:
		return decodeResource[model.RestaurantTable](resp)
	}

	return nil, apperrors.InvalidInput(fmt.Sprintf("unknown resource kind: %s", kind))
}

func decodeResource[T any, PT interface {
	*T
	model.ReservableResource
}](resp *client.Response) (model.ReservableResource, error) {
	var wrapper struct {
		Data T `json:"data"`
	}
	if err := resp.DecodeJSON(&wrapper); err != nil {
		return nil, apperrors.Internal("Failed to decode resource payload", err)
	}
	return PT(&wrapper.Data), nil
}
