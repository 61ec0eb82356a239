package gflights

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"regexp"

	"clovis-backend/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/codes"
)

// ErrAuthExtraction means the token markers were absent from the
// landing page: either the page layout changed or the upstream served
// a captcha/consent interstitial instead of the real page.
var ErrAuthExtraction = errors.New("session token extraction failed")

var sidMarker = regexp.MustCompile(`"FdrFJe":"(-?\d+)"`)
var blMarker = regexp.MustCompile(`"cfb2h":"([^"]+)"`)

// ExtractSessionTokens scans landing page html for the two session
// token markers. Exposed separately from FetchSession so the marker
// scan can be exercised against captured pages.
func ExtractSessionTokens(html string) (Session, error) {
	var s Session

	doc, err := goquery.NewDocumentFromReader(bytes.NewBufferString(html))
	if err == nil {
		for _, text := range htmlutil.ScriptTexts(doc) {
			if s.Sid == "" {
				if groups := sidMarker.FindStringSubmatch(text); groups != nil {
					s.Sid = groups[1]
				}
			}
			if s.Bl == "" {
				if groups := blMarker.FindStringSubmatch(text); groups != nil {
					s.Bl = groups[1]
				}
			}
			if s.Sid != "" && s.Bl != "" {
				return s, nil
			}
		}
	}

	// the markers occasionally sit outside a well-formed <script>
	// region, so fall back to scanning the raw text
	if s.Sid == "" {
		if groups := sidMarker.FindStringSubmatch(html); groups != nil {
			s.Sid = groups[1]
		}
	}
	if s.Bl == "" {
		if groups := blMarker.FindStringSubmatch(html); groups != nil {
			s.Bl = groups[1]
		}
	}

	if s.Sid == "" || s.Bl == "" {
		return Session{}, fmt.Errorf(
			"%w: upstream may have served a captcha or consent page",
			ErrAuthExtraction,
		)
	}
	return s, nil
}

// FetchSession fetches the landing page and extracts a fresh token
// pair. One synchronous call, no retries.
func (c *Client) FetchSession(ctx context.Context) (Session, error) {
	ctx, span := tracer.Start(ctx, "FetchSession")
	defer span.End()

	res, err := c.landing.R().
		SetContext(ctx).
		SetQueryParam("hl", "en-US").
		Get(c.frontendUrl)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch landing page")
		return Session{}, err
	}
	if !res.IsSuccess() {
		span.SetStatus(codes.Error, "landing page non-success status")
		return Session{}, fmt.Errorf("landing page returned status %s", res.Status())
	}

	s, err := ExtractSessionTokens(res.String())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "token markers absent")
		return Session{}, err
	}
	return s, nil
}
