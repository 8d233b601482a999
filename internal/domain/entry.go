package domain

// FoodEntry is one logged food item. Numeric fields arrive as JSON strings
// and are coerced; fiber, sugar and sodium may be absent or null and default
// to zero.
type FoodEntry struct {
	DateInt      string  `json:"date_int"`
	Meal         string  `json:"meal"`
	Name         string  `json:"food_entry_name"`
	Description  string  `json:"food_entry_description"`
	Calories     float64 `json:"calories"`
	Carbohydrate float64 `json:"carbohydrate"`
	Fat          float64 `json:"fat"`
	Protein      float64 `json:"protein"`
	Fiber        float64 `json:"fiber"`
	Sugar        float64 `json:"sugar"`
	Sodium       float64 `json:"sodium"`
}

// ParseFoodEntry converts a raw entry payload into a FoodEntry.
func ParseFoodEntry(data map[string]any) (*FoodEntry, error) {
	e := &FoodEntry{
		DateInt:     stringField(data, "date_int"),
		Meal:        stringField(data, "meal"),
		Name:        stringField(data, "food_entry_name"),
		Description: stringField(data, "food_entry_description"),
	}

	var err error
	if e.Calories, err = floatField(data, "calories", true); err != nil {
		return nil, err
	}
	if e.Carbohydrate, err = floatField(data, "carbohydrate", true); err != nil {
		return nil, err
	}
	if e.Fat, err = floatField(data, "fat", true); err != nil {
		return nil, err
	}
	if e.Protein, err = floatField(data, "protein", true); err != nil {
		return nil, err
	}
	if e.Fiber, err = floatField(data, "fiber", false); err != nil {
		return nil, err
	}
	if e.Sugar, err = floatField(data, "sugar", false); err != nil {
		return nil, err
	}
	if e.Sodium, err = floatField(data, "sodium", false); err != nil {
		return nil, err
	}
	return e, nil
}

// DayEntries pairs one day's opaque API payload with its date. It is the unit
// a historical sync accumulates and the cache stores.
type DayEntries struct {
	Date    string         `json:"date"`
	Payload map[string]any `json:"payload"`
}

// EntryList extracts the food_entries.food_entry list from a day payload.
// The API returns a bare object instead of a one-element list when a day has
// exactly one entry; both shapes normalize to a slice. Days without entries
// yield nil.
func EntryList(payload map[string]any) []map[string]any {
	wrapper, ok := payload["food_entries"].(map[string]any)
	if !ok {
		return nil
	}
	switch v := wrapper["food_entry"].(type) {
	case []any:
		entries := make([]map[string]any, 0, len(v))
		for _, item := range v {
			if m, ok := item.(map[string]any); ok {
				entries = append(entries, m)
			}
		}
		return entries
	case map[string]any:
		return []map[string]any{v}
	default:
		return nil
	}
}

// CachedEntryList normalizes a value read back from the entry cache. A synced
// day stores the full day payload while a bulk import stores a flat entry
// list; both shapes are accepted.
func CachedEntryList(value any) []map[string]any {
	switch v := value.(type) {
	case map[string]any:
		return EntryList(v)
	case []any:
		entries := make([]map[string]any, 0, len(v))
		for _, item := range v {
			if m, ok := item.(map[string]any); ok {
				entries = append(entries, m)
			}
		}
		return entries
	default:
		return nil
	}
}

// DayTotals is an aggregate over one day's parsed entries.
type DayTotals struct {
	Calories     float64
	Carbohydrate float64
	Fat          float64
	Protein      float64
}

// Totals sums calories and macros across entries.
func Totals(entries []*FoodEntry) DayTotals {
	var t DayTotals
	for _, e := range entries {
		t.Calories += e.Calories
		t.Carbohydrate += e.Carbohydrate
		t.Fat += e.Fat
		t.Protein += e.Protein
	}
	return t
}
