package models

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// FlexibleTime accepte les différents formats de dates renvoyés par l'API
type FlexibleTime struct {
	time.Time
}

var flexibleLayouts = []string{
	time.RFC3339Nano,      // "2025-12-31T20:00:00.000000Z"
	time.RFC3339,          // "2025-12-31T20:00:00Z"
	"2006-01-02T15:04:05", // "2025-12-31T20:00:00"
	"2006-01-02 15:04:05", // "2025-12-31 20:00:00"
	"2006-01-02T15:04",    // "2025-12-31T20:00"
	"2006-01-02",          // "2025-12-31"
}

// ParseFlexibleTime parse une date dans l'un des formats acceptés (UTC si aucun fuseau)
func ParseFlexibleTime(s string) (time.Time, error) {
	for _, layout := range flexibleLayouts {
		if parsed, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("format de date invalide: %s", s)
}

// UnmarshalJSON implémente le unmarshaler pour accepter plusieurs formats de dates
func (ft *FlexibleTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), "\"")
	if s == "null" || s == "" {
		ft.Time = time.Time{}
		return nil
	}

	parsed, err := ParseFlexibleTime(s)
	if err != nil {
		return err
	}
	ft.Time = parsed
	return nil
}

// MarshalJSON retourne la date au format RFC3339 (null si vide)
func (ft FlexibleTime) MarshalJSON() ([]byte, error) {
	if ft.Time.IsZero() {
		return []byte("null"), nil
	}
	return []byte("\"" + ft.Time.Format(time.RFC3339) + "\""), nil
}

// MarshalBSONValue stocke FlexibleTime comme une date MongoDB (pas un document)
func (ft FlexibleTime) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if ft.Time.IsZero() {
		return bsontype.Null, nil, nil
	}
	return bson.MarshalValue(ft.Time)
}

// UnmarshalBSONValue décode une date MongoDB (ou null) en FlexibleTime
func (ft *FlexibleTime) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	if t == bsontype.Null {
		ft.Time = time.Time{}
		return nil
	}
	value, ok := bson.RawValue{Type: t, Value: data}.TimeOK()
	if !ok {
		return fmt.Errorf("impossible de décoder %v en FlexibleTime", t)
	}
	ft.Time = value.UTC()
	return nil
}

// Now retourne l'instant courant tronqué à la seconde
func Now() FlexibleTime {
	return FlexibleTime{Time: time.Now().UTC().Truncate(time.Second)}
}
