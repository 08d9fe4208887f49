package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// GeoRecord is the JSON document returned by the geolocation endpoint
type GeoRecord struct {
	Status      string   `json:"status"`
	Message     string   `json:"message,omitempty"`
	Query       string   `json:"query"`
	Country     string   `json:"country"`
	CountryCode string   `json:"countryCode"`
	Region      string   `json:"region"`
	RegionName  string   `json:"regionName"`
	City        string   `json:"city"`
	Zip         string   `json:"zip"`
	Lat         *float64 `json:"lat,omitempty"`
	Lon         *float64 `json:"lon,omitempty"`
	Timezone    string   `json:"timezone"`
	ISP         string   `json:"isp"`
	Org         string   `json:"org"`
	AS          string   `json:"as"`
}

// Render formats the record for the result area
func (g *GeoRecord) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "IP: %s\n", orNA(g.Query))
	fmt.Fprintf(&b, "Country: %s\n", orNA(g.Country))
	fmt.Fprintf(&b, "Country Code: %s\n", orNA(g.CountryCode))
	fmt.Fprintf(&b, "Region: %s\n", orNA(g.Region))
	fmt.Fprintf(&b, "Region Name: %s\n", orNA(g.RegionName))
	fmt.Fprintf(&b, "City: %s\n", orNA(g.City))
	fmt.Fprintf(&b, "Zip: %s\n", orNA(g.Zip))
	fmt.Fprintf(&b, "Latitude: %s\n", formatCoord(g.Lat))
	fmt.Fprintf(&b, "Longitude: %s\n", formatCoord(g.Lon))
	fmt.Fprintf(&b, "Timezone: %s\n", orNA(g.Timezone))
	fmt.Fprintf(&b, "ISP: %s\n", orNA(g.ISP))
	fmt.Fprintf(&b, "Organization: %s\n", orNA(g.Org))
	fmt.Fprintf(&b, "AS: %s", orNA(g.AS))
	return b.String()
}

func formatCoord(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// FetchGeo queries {base}/json/{ip}. A "fail" status is returned as an error
// carrying the endpoint's message.
func (l *Lookups) FetchGeo(ctx context.Context, ip string) (*GeoRecord, error) {
	if strings.ContainsAny(ip, " \t\r\n/?#") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidIP, ip)
	}

	endpoint := strings.TrimSuffix(l.opts.IPAPIBaseURL, "/") + "/json/" + url.PathEscape(ip)
	resp, err := l.get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("geolocation request failed: %w", err)
	}
	defer drain(resp.Body)

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var rec GeoRecord
	if err := json.Unmarshal(body, &rec); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("geolocation endpoint returned HTTP %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if rec.Status == "fail" {
		msg := rec.Message
		if msg == "" {
			msg = "IP not found"
		}
		return nil, errors.New(msg)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geolocation endpoint returned HTTP %d", resp.StatusCode)
	}

	return &rec, nil
}

// GeolocateIP is the IP geolocation lookup function
func (l *Lookups) GeolocateIP(ctx context.Context, input string) Result {
	rec, err := l.FetchGeo(ctx, input)
	if err != nil {
		return Failed(err)
	}
	return Success(rec.Render())
}
