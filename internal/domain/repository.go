package domain

import "context"

// EntryCache defines the interface for the per-day entry store. WriteDay
// serializes the payload and stores it under the day's key, unconditionally
// overwriting any previous value. ReadDay reports an absent key with
// found=false and a nil error, never as an error and never as an empty value.
type EntryCache interface {
	WriteDay(ctx context.Context, date string, payload any) error
	ReadDay(ctx context.Context, date string) (value any, found bool, err error)
}

// NutritionAPI defines the interface for the FatSecret platform operations
// consumed by the sync layer and the CLI. Date arguments are YYYY-MM-DD; an
// empty date on GetExercises omits the filter entirely.
type NutritionAPI interface {
	GetProfile(ctx context.Context) (*UserProfile, error)
	GetFoodEntries(ctx context.Context, date string) (map[string]any, error)
	GetExercises(ctx context.Context, date string) (map[string]any, error)
	SearchFoods(ctx context.Context, query string, maxResults int) (map[string]any, error)
	GetMonthlyFoodEntries(ctx context.Context, date string) (map[string]any, error)
}
