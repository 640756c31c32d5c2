// README: Accepted point-of-interest returned to the map front end.
package types

// PoiResult is the cleaned representation of a winning search candidate.
type PoiResult struct {
	Name    string  `json:"name"`
	City    string  `json:"city,omitempty"`
	Address string  `json:"address,omitempty"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

func (r PoiResult) Point() Point {
	return Point{Lat: r.Lat, Lng: r.Lng}
}
