package maps

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// amapPlaceTextURL is a var so tests can point it at a local server.
var amapPlaceTextURL = "https://restapi.amap.com/v3/place/text"

// AMap infocodes that mean the key hit a QPS or daily limit.
var amapRateLimitCodes = map[string]bool{
	"10003": true, // DAILY_QUERY_OVER_LIMIT
	"10004": true, // ACCESS_TOO_FREQUENT
	"10019": true,
	"10020": true,
	"10021": true,
	"10022": true,
	"10044": true,
}

// AMapClient searches the AMap (高德) place/text endpoint.
type AMapClient struct {
	key     string
	client  *http.Client
	limiter *rate.Limiter
	pageLen int
}

// NewAMapClient returns a client throttled to qps requests per second.
func NewAMapClient(key string, qps float64) (*AMapClient, error) {
	if strings.TrimSpace(key) == "" {
		return nil, fmt.Errorf("amap: missing api key")
	}
	if qps <= 0 {
		qps = 3
	}
	return &AMapClient{
		key:     key,
		client:  &http.Client{Timeout: 10 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(qps), 1),
		pageLen: 10,
	}, nil
}

type amapResponse struct {
	Status   string    `json:"status"`
	Info     string    `json:"info"`
	Infocode string    `json:"infocode"`
	Pois     []amapPOI `json:"pois"`
}

type amapPOI struct {
	Name     string   `json:"name"`
	Type     flexText `json:"type"`
	Address  flexText `json:"address"`
	Location flexText `json:"location"`
	PName    flexText `json:"pname"`
	CityName flexText `json:"cityname"`
	AdName   flexText `json:"adname"`
}

// flexText accepts a JSON string or an array of strings. AMap sends [] for
// empty fields and occasionally a list for multi-part addresses.
type flexText string

func (f *flexText) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*f = ""
		return nil
	}
	if data[0] == '[' {
		var parts []string
		if err := json.Unmarshal(data, &parts); err != nil {
			return err
		}
		*f = flexText(strings.Join(parts, ""))
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*f = flexText(s)
	return nil
}

// Search runs one place/text query. city, when set, restricts results to it.
func (c *AMapClient) Search(ctx context.Context, query, city string) ([]Place, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("key", c.key)
	params.Set("keywords", query)
	if city != "" {
		params.Set("city", city)
		params.Set("citylimit", "true")
	}
	params.Set("offset", fmt.Sprint(c.pageLen))
	params.Set("page", "1")
	params.Set("extensions", "base")
	params.Set("output", "JSON")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, amapPlaceTextURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("amap: build request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("amap: do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("amap: http %d: %w", resp.StatusCode, ErrRateLimited)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("amap: http %d", resp.StatusCode)
	}

	var ar amapResponse
	if err := json.NewDecoder(resp.Body).Decode(&ar); err != nil {
		return nil, fmt.Errorf("amap: decode response: %w", err)
	}
	if ar.Status != "1" {
		if amapRateLimitCodes[ar.Infocode] || strings.Contains(ar.Info, "CUQPS_HAS_EXCEEDED_THE_LIMIT") {
			return nil, fmt.Errorf("amap: %s (%s): %w", ar.Info, ar.Infocode, ErrRateLimited)
		}
		return nil, fmt.Errorf("amap: %s (%s)", ar.Info, ar.Infocode)
	}

	out := make([]Place, 0, len(ar.Pois))
	for _, p := range ar.Pois {
		out = append(out, Place{
			Name:     p.Name,
			CityName: string(p.CityName),
			Province: string(p.PName),
			District: string(p.AdName),
			Address:  string(p.Address),
			Type:     string(p.Type),
			Location: string(p.Location),
		})
	}
	return out, nil
}
