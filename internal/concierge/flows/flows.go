package flows

import (
	"fmt"
	"net/http"
	"venuely/internal/concierge/core"
	"venuely/pkg/client"
	"venuely/pkg/model"
)

// Registry returns every flow the concierge exposes. The engine is rebuilt
// from this list on startup.
func Registry() []*core.Flow {
	return []*core.Flow{
		SearchVenuesFlow(),
		DailyAvailabilityFlow(),
		CreateReservationFlow(),
	}
}

func kindForVenueType(venueType model.VenueType) (model.ResourceKind, error) {
	switch venueType {
	case model.VenueSports:
		return model.KindSportsFacility, nil
	case model.VenueHotel:
		return model.KindHotelRoom, nil
	case model.VenueRestaurant:
		return model.KindRestaurantTable, nil
	}
	return "", fmt.Errorf("venue type [%v] has no reservable resource kind", venueType)
}

// remoteErr turns a non-2xx sibling-service response into a step error
// carrying the upstream message.
func remoteErr(operation string, resp *client.Response) error {
	return fmt.Errorf("%v failed with status %d: %v",
		operation, resp.StatusCode, client.GetErrorMessage(resp))
}

func ok(resp *client.Response) bool {
	return resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices
}

func decodeResourcesForKind(kind model.ResourceKind, resp *client.Response) ([]model.ReservableResource, error) {
	switch kind {
	case model.KindSportsFacility:
		facilities, _, err := client.DecodeResources[model.SportsFacility](resp)
		if err != nil {
			return nil, err
		}
		return asReservable(facilities), nil
	case model.KindHotelRoom:
		rooms, _, err := client.DecodeResources[model.HotelRoom](resp)
		if err != nil {
			return nil, err
		}
		return asReservable(rooms), nil
	case model.KindRestaurantTable:
		tables, _, err := client.DecodeResources[model.RestaurantTable](resp)
		if err != nil {
			return nil, err
		}
		return asReservable(tables), nil
	}
	return nil, fmt.Errorf("unknown resource kind: %v", kind)
}

func asReservable[T any, PT interface {
	*T
	model.ReservableResource
}](items []*T) []model.ReservableResource {
	resources := make([]model.ReservableResource, 0, len(items))
	for _, item := range items {
		resources = append(resources, PT(item))
	}
	return resources
}
