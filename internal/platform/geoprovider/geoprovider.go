// Package geoprovider implements the Geo/Routing Gateway's (C1)
// production client: an OAuth2 client-credentials-authenticated HTTP
// client against the external geocoding/routing service, with typed
// error classification so the gateway can tell quota exhaustion from
// transient failure.
package geoprovider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/andreypavlenko/matchengine/modules/matching"
	"golang.org/x/oauth2/clientcredentials"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// Provider is the capability the transport pre-filter (C3) needs,
// satisfied both by this production client and by geoprovidertest's
// deterministic fake.
type Provider interface {
	// Geocode resolves an address to coordinates and a confidence in
	// [0,1]; confidence below the pre-filter's threshold is treated
	// as an unknown address.
	Geocode(ctx context.Context, address string) (lat, lon, confidence float64, err error)
	// TravelTimeMin returns the travel time in minutes between two
	// coordinates for the given mode.
	TravelTimeMin(ctx context.Context, fromLat, fromLon, toLat, toLon float64, mode matching.TransportMode) (int, error)
}

// Config holds the production client's endpoint and credentials.
type Config struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	TokenURL     string
}

// Client is the production Provider, authenticated via OAuth2
// client-credentials against the configured routing service.
type Client struct {
	baseURL string
	http    *http.Client
	opts    []option.ClientOption
}

// New builds a Client. The client-credentials config produces an
// *http.Client that attaches a bearer token to every outgoing
// request; the resulting option.ClientOption is kept on Client so a
// future generated API client (google.golang.org/api-style) can be
// substituted for the hand-rolled HTTP calls without changing New's
// signature.
func New(ctx context.Context, cfg Config) (*Client, error) {
	ccCfg := clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
	}
	httpClient := ccCfg.Client(ctx)

	return &Client{
		baseURL: cfg.BaseURL,
		http:    httpClient,
		opts:    []option.ClientOption{option.WithHTTPClient(httpClient)},
	}, nil
}

// Geocode implements Provider.
func (c *Client) Geocode(ctx context.Context, address string) (float64, float64, float64, error) {
	var out struct {
		Lat        float64 `json:"lat"`
		Lon        float64 `json:"lon"`
		Confidence float64 `json:"confidence"`
	}
	if err := c.getJSON(ctx, fmt.Sprintf("%s/geocode?address=%s", c.baseURL, address), &out); err != nil {
		return 0, 0, 0, classifyErr(err)
	}
	return out.Lat, out.Lon, out.Confidence, nil
}

// TravelTimeMin implements Provider.
func (c *Client) TravelTimeMin(ctx context.Context, fromLat, fromLon, toLat, toLon float64, mode matching.TransportMode) (int, error) {
	var out struct {
		Minutes int `json:"minutes"`
	}
	url := fmt.Sprintf("%s/route?from=%f,%f&to=%f,%f&mode=%s", c.baseURL, fromLat, fromLon, toLat, toLon, mode)
	if err := c.getJSON(ctx, url, &out); err != nil {
		return 0, classifyErr(err)
	}
	return out.Minutes, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return &googleapi.Error{Code: resp.StatusCode, Message: resp.Status}
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// classifyErr maps a transport-level error to the sentinel the geo
// gateway's quota/retry logic understands.
func classifyErr(err error) error {
	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		switch gErr.Code {
		case http.StatusTooManyRequests, http.StatusForbidden:
			return matching.ErrQuotaExhausted
		}
	}
	return err
}
