package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"
	"venuely/pkg/model"
)

type ReservationClient struct {
	httpClient *HttpClient
}

func NewReservationClient(baseURL string) *ReservationClient {
	return &ReservationClient{
		httpClient: NewHttpClient(baseURL),
	}
}

func (c *ReservationClient) Create(ctx context.Context, body any) (*Response, error) {
	return c.httpClient.POST(ctx, "/api/v1/reservations", body)
}

func (c *ReservationClient) CreateWithIdempotencyKey(ctx context.Context, body any, key string) (*Response, error) {
	return c.httpClient.POSTWithHeaders(ctx, "/api/v1/reservations", body, map[string]string{
		"Idempotency-Key": key,
	})
}

func (c *ReservationClient) GetByID(ctx context.Context, id string) (*Response, error) {
	path := "/api/v1/reservations/id/" + url.PathEscape(id)
	return c.httpClient.GET(ctx, path)
}

func (c *ReservationClient) GetByConfirmationCode(ctx context.Context, code string) (*Response, error) {
	path := "/api/v1/reservations/code/" + url.PathEscape(code)
	return c.httpClient.GET(ctx, path)
}

func (c *ReservationClient) GetByUser(ctx context.Context, userID string, limit int, offset int64) (*Response, error) {
	path := fmt.Sprintf("/api/v1/reservations/user/%s?limit=%d&offset=%d",
		url.PathEscape(userID), limit, offset)
	return c.httpClient.GET(ctx, path)
}

func (c *ReservationClient) GetByVenue(ctx context.Context, venueID string, from, to time.Time, limit int, offset int64) (*Response, error) {
	q := url.Values{}
	if !from.IsZero() {
		q.Set("from", from.Format(time.RFC3339))
	}
	if !to.IsZero() {
		q.Set("to", to.Format(time.RFC3339))
	}
	q.Set("limit", fmt.Sprintf("%d", limit))
	q.Set("offset", fmt.Sprintf("%d", offset))

	path := fmt.Sprintf("/api/v1/reservations/venue/%s?%s", url.PathEscape(venueID), q.Encode())
	return c.httpClient.GET(ctx, path)
}

func (c *ReservationClient) GetByResource(ctx context.Context, kind model.ResourceKind, resourceID string, from, to time.Time, limit int, offset int64) (*Response, error) {
	q := url.Values{}
	if !from.IsZero() {
		q.Set("from", from.Format(time.RFC3339))
	}
	if !to.IsZero() {
		q.Set("to", to.Format(time.RFC3339))
	}
	q.Set("limit", fmt.Sprintf("%d", limit))
	q.Set("offset", fmt.Sprintf("%d", offset))

	path := fmt.Sprintf("/api/v1/reservations/resource/%s/%s?%s", kind, url.PathEscape(resourceID), q.Encode())
	return c.httpClient.GET(ctx, path)
}

func (c *ReservationClient) CheckAvailability(ctx context.Context, kind model.ResourceKind, resourceID string, start, end time.Time) (*Response, error) {
	q := url.Values{}
	q.Set("start_time", start.Format(time.RFC3339))
	q.Set("end_time", end.Format(time.RFC3339))

	path := fmt.Sprintf("/api/v1/reservations/resource/%s/%s/availability?%s",
		kind, url.PathEscape(resourceID), q.Encode())
	return c.httpClient.GET(ctx, path)
}

func (c *ReservationClient) Update(ctx context.Context, id string, body any) (*Response, error) {
	path := "/api/v1/reservations/id/" + url.PathEscape(id)
	return c.httpClient.PATCH(ctx, path, body)
}

func (c *ReservationClient) Confirm(ctx context.Context, id string) (*Response, error) {
	path := "/api/v1/reservations/id/" + url.PathEscape(id) + "/confirm"
	return c.httpClient.POST(ctx, path, nil)
}

func (c *ReservationClient) Cancel(ctx context.Context, id string, reason string) (*Response, error) {
	path := "/api/v1/reservations/id/" + url.PathEscape(id) + "/cancel"
	body := map[string]string{"reason": reason}
	return c.httpClient.POST(ctx, path, body)
}

func (c *ReservationClient) Complete(ctx context.Context, id string) (*Response, error) {
	path := "/api/v1/reservations/id/" + url.PathEscape(id) + "/complete"
	return c.httpClient.POST(ctx, path, nil)
}

func (c *ReservationClient) Delete(ctx context.Context, id string) (*Response, error) {
	path := "/api/v1/reservations/id/" + url.PathEscape(id)
	return c.httpClient.DELETE(ctx, path)
}

func (c *ReservationClient) DecodeReservation(resp *Response) (*model.Reservation, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode reservation wrapper: %w", err)
	}

	var reservation model.Reservation
	if err := json.Unmarshal(wrapper.Data, &reservation); err != nil {
		return nil, fmt.Errorf("could not decode reservation json: %w", err)
	}

	return &reservation, nil
}

func (c *ReservationClient) DecodeReservations(resp *Response) ([]*model.Reservation, *Metadata, error) {
	var wrapper struct {
		Data       json.RawMessage `json:"data"`
		TotalCount int64           `json:"total_count"`
		Limit      int             `json:"limit"`
		Offset     int64           `json:"offset"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, nil, fmt.Errorf("could not decode paginated reservations: %w", err)
	}

	var reservations []*model.Reservation
	if err := json.Unmarshal(wrapper.Data, &reservations); err != nil {
		return nil, nil, fmt.Errorf("could not decode reservation list: %w", err)
	}

	metadata := &Metadata{
		TotalCount: wrapper.TotalCount,
		Limit:      wrapper.Limit,
		Offset:     wrapper.Offset,
	}

	return reservations, metadata, nil
}

// AvailabilityResult mirrors the availability endpoint payload.
type AvailabilityResult struct {
	Available       bool  `json:"available"`
	ConflictCount   int   `json:"conflict_count"`
	QuotedPriceCents int64 `json:"quoted_price_cents"`
}

func (c *ReservationClient) DecodeAvailability(resp *Response) (*AvailabilityResult, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode availability wrapper: %w", err)
	}

	var result AvailabilityResult
	if err := json.Unmarshal(wrapper.Data, &result); err != nil {
		return nil, fmt.Errorf("could not decode availability json: %w", err)
	}

	return &result, nil
}
