package flows

import (
	"strings"
	"venuely/internal/concierge/core"
)

// SearchVenuesFlow finds venues by city and optional type. It is the entry
// point of the guest journey: the slots a guest can book always hang off a
// venue found here.
func SearchVenuesFlow() *core.Flow {
	return core.NewFlow("search_venues",
		&core.Step{Name: "extract criteria", Execute: extractSearchCriteria},
		&core.Step{Name: "search venues", Execute: searchVenues},
	)
}

func extractSearchCriteria(fc *core.FlowContext) error {
	raw, err := fc.ExtractString("cities")
	if err != nil {
		return err
	}

	var cities []string
	for _, city := range strings.Split(raw, ",") {
		if city = strings.TrimSpace(city); city != "" {
			cities = append(cities, city)
		}
	}
	if len(cities) == 0 {
		return core.MissingParamErr("cities")
	}

	fc.Process["cities"] = cities
	fc.Process["type"] = fc.OptionalString("type")
	fc.Process["limit"] = fc.OptionalInt("limit", 20)
	fc.Process["offset"] = fc.OptionalInt("offset", 0)
	return nil
}

func searchVenues(fc *core.FlowContext) error {
	cities := fc.Process["cities"].([]string)
	venueType := fc.Process["type"].(string)
	limit := fc.Process["limit"].(int)
	offset := fc.Process["offset"].(int)

	resp, err := fc.Client.Venues.Search(fc.Ctx, cities, venueType, limit, int64(offset))
	if err != nil {
		return err
	}
	if !ok(resp) {
		return remoteErr("venue search", resp)
	}

	venues, _, err := fc.Client.Venues.DecodeVenues(resp)
	if err != nil {
		return err
	}

	summaries := make([]map[string]any, 0, len(venues))
	for _, venue := range venues {
		summaries = append(summaries, map[string]any{
			"id":        venue.ID,
			"name":      venue.Name,
			"type":      venue.Type,
			"city":      venue.City,
			"address":   venue.Address,
			"time_zone": venue.TimeZone,
		})
	}

	fc.Output["venues"] = summaries
	fc.Output["count"] = len(summaries)
	return nil
}
