package domain

import (
	"fmt"
	"strconv"
)

// UserProfile is the authenticated user's weight profile as reported by the
// profile.get operation.
type UserProfile struct {
	GoalWeightKG      float64 `json:"goal_weight_kg"`
	HeightCM          float64 `json:"height_cm"`
	HeightMeasure     string  `json:"height_measure"`
	LastWeightKG      float64 `json:"last_weight_kg"`
	WeightMeasure     string  `json:"weight_measure"`
	LastWeightDateInt string  `json:"last_weight_date_int,omitempty"`
	LastWeightComment string  `json:"last_weight_comment,omitempty"`
}

// ParseUserProfile converts a raw profile payload into a UserProfile. The API
// encodes every numeric field as a JSON string, so values are coerced.
func ParseUserProfile(data map[string]any) (*UserProfile, error) {
	p := &UserProfile{
		HeightMeasure:     stringField(data, "height_measure"),
		WeightMeasure:     stringField(data, "weight_measure"),
		LastWeightDateInt: stringField(data, "last_weight_date_int"),
		LastWeightComment: stringField(data, "last_weight_comment"),
	}

	var err error
	if p.GoalWeightKG, err = floatField(data, "goal_weight_kg", true); err != nil {
		return nil, err
	}
	if p.HeightCM, err = floatField(data, "height_cm", true); err != nil {
		return nil, err
	}
	if p.LastWeightKG, err = floatField(data, "last_weight_kg", true); err != nil {
		return nil, err
	}
	return p, nil
}

func stringField(data map[string]any, key string) string {
	s, _ := data[key].(string)
	return s
}

// floatField coerces a payload value to float64. Absent or null values are an
// error when required, zero otherwise.
func floatField(data map[string]any, key string, required bool) (float64, error) {
	v, ok := data[key]
	if !ok || v == nil {
		if required {
			return 0, fmt.Errorf("%w: missing %s", ErrMalformedPayload, key)
		}
		return 0, nil
	}
	switch n := v.(type) {
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %s=%q", ErrMalformedPayload, key, n)
		}
		return f, nil
	case float64:
		return n, nil
	default:
		return 0, fmt.Errorf("%w: %s has type %T", ErrMalformedPayload, key, v)
	}
}
