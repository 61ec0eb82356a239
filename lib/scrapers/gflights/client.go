package gflights

import (
	"context"
	"errors"
	"fmt"
	"net/http/cookiejar"
	"time"

	"clovis-backend/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/codes"
)

// The frontend never documents any of this: endpoints, headers and
// payload shapes were recovered by observing real browser traffic.
// Changing any pinned value tends to degrade to empty result sets
// rather than a decodable error.
const (
	defaultSiteUrl     = "https://www.google.com"
	defaultFrontendUrl = "https://www.google.com/travel/flights"
	defaultRpcUrl      = "https://www.google.com/_/FlightsFrontendUi/data/travel.frontend.flights.FlightsFrontendService/GetShoppingResults"

	rpcUserAgent     = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/144.0.0.0 Safari/537.36"
	landingUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36"

	localeExtHeader = `["en-US","US","USD",2,null,[300],null,null,7,[]]`
)

var ErrRemoteCall = errors.New("shopping rpc failed")

type Options struct {
	// site root used for deep-link urls
	SiteUrl string `json:"site_url"`
	// landing page the session tokens are scraped from
	FrontendUrl string `json:"frontend_url"`
	// the GetShoppingResults endpoint
	RpcUrl string `json:"rpc_url"`
	// per-call timeout, defaults to 10
	TimeoutSeconds int `json:"timeout_seconds"`
}

type Client struct {
	siteUrl     string
	frontendUrl string
	rpcUrl      string
	landing     *resty.Client
	rpc         *resty.Client
}

func NewClient(opts Options) (*Client, error) {
	if opts.SiteUrl == "" {
		opts.SiteUrl = defaultSiteUrl
	}
	if opts.FrontendUrl == "" {
		opts.FrontendUrl = defaultFrontendUrl
	}
	if opts.RpcUrl == "" {
		opts.RpcUrl = defaultRpcUrl
	}
	if opts.TimeoutSeconds <= 0 {
		opts.TimeoutSeconds = 10
	}
	timeout := time.Second * time.Duration(opts.TimeoutSeconds)

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	landing := resty.New()
	landing.SetCookieJar(jar)
	landing.SetTimeout(timeout)
	landing.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(landing.GetClient().Transport)
	landing.SetHeaders(map[string]string{
		"user-agent":         landingUserAgent,
		"accept":             "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8",
		"accept-language":    "en-US,en;q=0.9",
		"sec-ch-ua":          `"Not A(Brand";v="99", "Google Chrome";v="121", "Chromium";v="121"`,
		"sec-ch-ua-mobile":   "?0",
		"sec-ch-ua-platform": `"Windows"`,
	})
	telemetry.InstrumentResty(landing, "scrapers/gflights/landing")

	rpc := resty.New()
	rpc.SetCookieJar(jar)
	rpc.SetTimeout(timeout)
	rpc.SetHeaders(map[string]string{
		"user-agent":                rpcUserAgent,
		"content-type":              "application/x-www-form-urlencoded;charset=UTF-8",
		"origin":                    "https://www.google.com",
		"referer":                   "https://www.google.com/travel/flights",
		"x-same-domain":             "1",
		"x-goog-ext-259736195-jspb": localeExtHeader,
	})
	telemetry.InstrumentResty(rpc, "scrapers/gflights/rpc")

	return &Client{
		siteUrl:     opts.SiteUrl,
		frontendUrl: opts.FrontendUrl,
		rpcUrl:      opts.RpcUrl,
		landing:     landing,
		rpc:         rpc,
	}, nil
}

// SearchRoundTrip runs one round-trip shopping rpc and returns the
// decoded itineraries sorted ascending by price. An empty list means
// the remote reported no results (or served an undecodable payload).
func (c *Client) SearchRoundTrip(ctx context.Context, s Session, origin, destination, departDate, returnDate string) ([]Itinerary, error) {
	return c.shoppingResults(ctx, s, SearchRequest{
		Trip:        TripRoundTrip,
		Origin:      origin,
		Destination: destination,
		DepartDate:  departDate,
		ReturnDate:  returnDate,
	})
}

func (c *Client) SearchOneWay(ctx context.Context, s Session, origin, destination, departDate string) ([]Itinerary, error) {
	return c.shoppingResults(ctx, s, SearchRequest{
		Trip:        TripOneWay,
		Origin:      origin,
		Destination: destination,
		DepartDate:  departDate,
	})
}

// SearchReturnLeg searches return legs that pair with a previously
// selected outbound itinerary, identified by its booking token.
func (c *Client) SearchReturnLeg(ctx context.Context, s Session, priorToken, origin, destination, returnDate string) ([]Itinerary, error) {
	return c.shoppingResults(ctx, s, SearchRequest{
		Trip:        TripReturnLeg,
		Origin:      origin,
		Destination: destination,
		DepartDate:  returnDate,
		PriorToken:  priorToken,
	})
}

func (c *Client) shoppingResults(ctx context.Context, s Session, req SearchRequest) ([]Itinerary, error) {
	ctx, span := tracer.Start(ctx, "shoppingResults")
	defer span.End()

	body, err := EncodeShoppingRequest(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to encode shopping request")
		return nil, err
	}
	query, err := rpcQuery(s, req.Trip)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to build rpc query")
		return nil, err
	}

	res, err := c.rpc.R().
		SetContext(ctx).
		SetQueryParamsFromValues(query).
		SetFormData(map[string]string{"f.req": body}).
		Post(c.rpcUrl)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "shopping rpc transport failure")
		return nil, fmt.Errorf("%w: %s", ErrRemoteCall, err.Error())
	}
	if !res.IsSuccess() {
		span.SetStatus(codes.Error, "shopping rpc non-success status")
		return nil, fmt.Errorf("%w: status %s", ErrRemoteCall, res.Status())
	}

	return DecodeShoppingResults(res.String()), nil
}
