package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"venuely/pkg/model"
)

type Metadata struct {
	TotalCount int64
	Limit      int
	Offset     int64
}

// VenueClient talks to the venues service. Used by the concierge gateway and
// by integration tooling; domain services never call each other's databases
// directly.
type VenueClient struct {
	httpClient *HttpClient
}

func NewVenueClient(baseURL string) *VenueClient {
	return &VenueClient{
		httpClient: NewHttpClient(baseURL),
	}
}

func (c *VenueClient) Create(ctx context.Context, body any) (*Response, error) {
	return c.httpClient.POST(ctx, "/api/v1/venues", body)
}

func (c *VenueClient) GetAll(ctx context.Context, limit int, offset int64) (*Response, error) {
	path := fmt.Sprintf("/api/v1/venues?limit=%d&offset=%d", limit, offset)
	return c.httpClient.GET(ctx, path)
}

func (c *VenueClient) Search(ctx context.Context, cities []string, venueType string, limit int, offset int64) (*Response, error) {
	q := url.Values{}
	q.Set("cities", strings.Join(cities, ","))
	if venueType != "" {
		q.Set("type", venueType)
	}
	q.Set("limit", fmt.Sprintf("%d", limit))
	q.Set("offset", fmt.Sprintf("%d", offset))

	path := "/api/v1/venues/search?" + q.Encode()
	return c.httpClient.GET(ctx, path)
}

func (c *VenueClient) GetByID(ctx context.Context, id string) (*Response, error) {
	path := "/api/v1/venues/id/" + url.PathEscape(id)
	return c.httpClient.GET(ctx, path)
}

func (c *VenueClient) Update(ctx context.Context, id string, body any) (*Response, error) {
	path := "/api/v1/venues/id/" + url.PathEscape(id)
	return c.httpClient.PATCH(ctx, path, body)
}

func (c *VenueClient) Delete(ctx context.Context, id string) (*Response, error) {
	path := "/api/v1/venues/id/" + url.PathEscape(id)
	return c.httpClient.DELETE(ctx, path)
}

// Resource endpoints are nested under the owning venue and keyed by kind.

func (c *VenueClient) CreateResource(ctx context.Context, venueID string, kind model.ResourceKind, body any) (*Response, error) {
	path := fmt.Sprintf("/api/v1/venues/id/%s/resources/%s", url.PathEscape(venueID), kind)
	return c.httpClient.POST(ctx, path, body)
}

func (c *VenueClient) ListResources(ctx context.Context, venueID string, kind model.ResourceKind, limit int, offset int64) (*Response, error) {
	path := fmt.Sprintf("/api/v1/venues/id/%s/resources/%s?limit=%d&offset=%d",
		url.PathEscape(venueID), kind, limit, offset)
	return c.httpClient.GET(ctx, path)
}

func (c *VenueClient) GetResource(ctx context.Context, venueID string, kind model.ResourceKind, resourceID string) (*Response, error) {
	path := fmt.Sprintf("/api/v1/venues/id/%s/resources/%s/%s",
		url.PathEscape(venueID), kind, url.PathEscape(resourceID))
	return c.httpClient.GET(ctx, path)
}

func (c *VenueClient) UpdateResource(ctx context.Context, venueID string, kind model.ResourceKind, resourceID string, body any) (*Response, error) {
	path := fmt.Sprintf("/api/v1/venues/id/%s/resources/%s/%s",
		url.PathEscape(venueID), kind, url.PathEscape(resourceID))
	return c.httpClient.PATCH(ctx, path, body)
}

func (c *VenueClient) DeleteResource(ctx context.Context, venueID string, kind model.ResourceKind, resourceID string) (*Response, error) {
	path := fmt.Sprintf("/api/v1/venues/id/%s/resources/%s/%s",
		url.PathEscape(venueID), kind, url.PathEscape(resourceID))
	return c.httpClient.DELETE(ctx, path)
}

// GetResourceByID looks a resource up without knowing its venue. Used by
// the reservations service, which only stores venue_id alongside and must
// not trust it for resolution.
func (c *VenueClient) GetResourceByID(ctx context.Context, kind model.ResourceKind, resourceID string) (*Response, error) {
	path := fmt.Sprintf("/api/v1/resources/%s/%s", kind, url.PathEscape(resourceID))
	return c.httpClient.GET(ctx, path)
}

func (c *VenueClient) DecodeVenue(resp *Response) (*model.Venue, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode venue wrapper: %w", err)
	}

	var venue model.Venue
	if err := json.Unmarshal(wrapper.Data, &venue); err != nil {
		return nil, fmt.Errorf("could not decode venue json: %w", err)
	}

	return &venue, nil
}

func (c *VenueClient) DecodeVenues(resp *Response) ([]*model.Venue, *Metadata, error) {
	var wrapper struct {
		Data       json.RawMessage `json:"data"`
		TotalCount int64           `json:"total_count"`
		Limit      int             `json:"limit"`
		Offset     int64           `json:"offset"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, nil, fmt.Errorf("could not decode paginated venues: %w", err)
	}

	var venues []*model.Venue
	if err := json.Unmarshal(wrapper.Data, &venues); err != nil {
		return nil, nil, fmt.Errorf("could not decode venue list: %w", err)
	}

	metadata := &Metadata{
		TotalCount: wrapper.TotalCount,
		Limit:      wrapper.Limit,
		Offset:     wrapper.Offset,
	}

	return venues, metadata, nil
}

// DecodeResources decodes the polymorphic resource list into the concrete
// type for the requested kind.
func DecodeResources[T any](resp *Response) ([]*T, *Metadata, error) {
	var wrapper struct {
		Data       json.RawMessage `json:"data"`
		TotalCount int64           `json:"total_count"`
		Limit      int             `json:"limit"`
		Offset     int64           `json:"offset"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, nil, fmt.Errorf("could not decode paginated resources: %w", err)
	}

	var resources []*T
	if err := json.Unmarshal(wrapper.Data, &resources); err != nil {
		return nil, nil, fmt.Errorf("could not decode resource list: %w", err)
	}

	metadata := &Metadata{
		TotalCount: wrapper.TotalCount,
		Limit:      wrapper.Limit,
		Offset:     wrapper.Offset,
	}

	return resources, metadata, nil
}
