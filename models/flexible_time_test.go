package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestFlexibleTime_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{"format laravel", `"2025-12-31T20:00:00.000000Z"`, time.Date(2025, 12, 31, 20, 0, 0, 0, time.UTC), false},
		{"format ISO", `"2025-12-31T20:00:00"`, time.Date(2025, 12, 31, 20, 0, 0, 0, time.UTC), false},
		{"format court", `"2025-12-31T20:00"`, time.Date(2025, 12, 31, 20, 0, 0, 0, time.UTC), false},
		{"date seule", `"2025-12-31"`, time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), false},
		{"null", `null`, time.Time{}, false},
		{"vide", `""`, time.Time{}, false},
		{"invalide", `"invalid"`, time.Time{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ft FlexibleTime
			err := json.Unmarshal([]byte(tt.input), &ft)
			if (err != nil) != tt.wantErr {
				t.Fatalf("UnmarshalJSON() erreur = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !ft.Time.Equal(tt.want) {
				t.Errorf("UnmarshalJSON() = %v, attendu %v", ft.Time, tt.want)
			}
		})
	}
}

func TestFlexibleTime_MarshalJSON(t *testing.T) {
	var ft FlexibleTime
	data, err := json.Marshal(ft)
	if err != nil {
		t.Fatalf("MarshalJSON() erreur = %v", err)
	}
	if string(data) != "null" {
		t.Errorf("MarshalJSON() vide = %s, attendu null", data)
	}

	_ = json.Unmarshal([]byte(`"2025-12-31T20:00:00Z"`), &ft)
	data, err = json.Marshal(ft)
	if err != nil {
		t.Fatalf("MarshalJSON() erreur = %v", err)
	}
	if string(data) != `"2025-12-31T20:00:00Z"` {
		t.Errorf("MarshalJSON() = %s", data)
	}
}
