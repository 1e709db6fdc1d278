package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/paulmach/orb"

	"github.com/rsempe/tracemyride/internal/route"
)

// Error is a non-success response from the routing backend, carrying the
// human-readable detail message when the backend provided one.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Client talks JSON over HTTP to the routing backend's /api/v1 surface.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) Generate(ctx context.Context, params GenerateParams) (route.Route, error) {
	var r route.Route
	if err := c.do(ctx, http.MethodPost, "/generate", params, &r); err != nil {
		return route.Route{}, err
	}
	return r, nil
}

func (c *Client) Snap(ctx context.Context, coordinates []orb.Point) (route.Route, error) {
	coords := make([][]float64, 0, len(coordinates))
	for _, pt := range coordinates {
		coords = append(coords, []float64{pt.Lon(), pt.Lat()})
	}
	body := map[string]any{"coordinates": coords}

	var r route.Route
	if err := c.do(ctx, http.MethodPost, "/snap", body, &r); err != nil {
		return route.Route{}, err
	}
	return r, nil
}

func (c *Client) Explore(ctx context.Context, params ExploreParams) (route.ExploredRouteSet, error) {
	var set route.ExploredRouteSet
	if err := c.do(ctx, http.MethodPost, "/explore", params, &set); err != nil {
		return route.ExploredRouteSet{}, err
	}
	return set, nil
}

func (c *Client) SaveRoute(ctx context.Context, name string, r route.Route) (route.SavedRouteSummary, error) {
	body := map[string]any{
		"name":              name,
		"geojson":           r,
		"distance_km":       r.DistanceKm,
		"elevation_gain":    r.ElevationGain,
		"elevation_loss":    r.ElevationLoss,
		"elevation_profile": r.Profile,
	}

	var summary route.SavedRouteSummary
	if err := c.do(ctx, http.MethodPost, "/routes", body, &summary); err != nil {
		return route.SavedRouteSummary{}, err
	}
	return summary, nil
}

func (c *Client) ListRoutes(ctx context.Context) ([]route.SavedRouteSummary, error) {
	var summaries []route.SavedRouteSummary
	if err := c.do(ctx, http.MethodGet, "/routes", nil, &summaries); err != nil {
		return nil, err
	}
	return summaries, nil
}

func (c *Client) GetRoute(ctx context.Context, id string) (route.SavedRouteDetail, error) {
	var detail route.SavedRouteDetail
	if err := c.do(ctx, http.MethodGet, "/routes/"+id, nil, &detail); err != nil {
		return route.SavedRouteDetail{}, err
	}
	return detail, nil
}

func (c *Client) DeleteRoute(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/routes/"+id, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(data, &body); err == nil && body.Detail != "" {
		return &Error{Status: resp.StatusCode, Message: body.Detail}
	}
	return &Error{Status: resp.StatusCode, Message: fmt.Sprintf("routing backend returned %s", resp.Status)}
}
