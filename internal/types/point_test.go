package types

import (
	"math"
	"testing"
)

func TestDistanceKm_KnownDistances(t *testing.T) {
	tests := []struct {
		name      string
		a, b      Point
		wantKm    float64
		tolerance float64
	}{
		{
			name:      "same point",
			a:         Point{Lat: 39.9163, Lng: 116.3972},
			b:         Point{Lat: 39.9163, Lng: 116.3972},
			wantKm:    0,
			tolerance: 0.001,
		},
		{
			name:      "Forbidden City to Temple of Heaven (~4km)",
			a:         Point{Lat: 39.9163, Lng: 116.3972},
			b:         Point{Lat: 39.8822, Lng: 116.4066},
			wantKm:    3.9,
			tolerance: 0.5,
		},
		{
			name:      "Beijing to Shanghai (~1068km)",
			a:         Point{Lat: 39.9042, Lng: 116.4074},
			b:         Point{Lat: 31.2304, Lng: 121.4737},
			wantKm:    1068,
			tolerance: 20,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.DistanceKm(tt.b)
			if math.Abs(got-tt.wantKm) > tt.tolerance {
				t.Errorf("DistanceKm() = %f, want %f (±%f)", got, tt.wantKm, tt.tolerance)
			}
		})
	}
}

func TestDistanceKm_Symmetry(t *testing.T) {
	a := Point{Lat: 30.0, Lng: 120.0}
	b := Point{Lat: 31.0, Lng: 121.0}
	if math.Abs(a.DistanceKm(b)-b.DistanceKm(a)) > 0.0001 {
		t.Errorf("distance is not symmetric")
	}
}

func TestChatMessageHasPlan(t *testing.T) {
	cases := []struct {
		name string
		msg  ChatMessage
		want bool
	}{
		{"user turn", ChatMessage{Type: RoleUser, Content: "杭州三日游"}, false},
		{"assistant without data", ChatMessage{Type: RoleAssistant, Content: "好的"}, false},
		{"assistant with empty pois", ChatMessage{Type: RoleAssistant, Data: &MessageData{}}, false},
		{"assistant with pois", ChatMessage{Type: RoleAssistant, Data: &MessageData{POIs: []PoiResult{{Name: "西湖"}}}}, true},
	}
	for _, tc := range cases {
		if got := tc.msg.HasPlan(); got != tc.want {
			t.Errorf("%s: HasPlan() = %v, want %v", tc.name, got, tc.want)
		}
	}
}
