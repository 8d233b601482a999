package usecase

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/coldshrine/calorista/internal/domain"
)

// SyncService walks historical date ranges, writing each day's entries
// through to the cache as it goes.
type SyncService struct {
	api    domain.NutritionAPI
	cache  domain.EntryCache
	logger zerolog.Logger
}

// NewSyncService creates a sync service over the given API and cache.
func NewSyncService(api domain.NutritionAPI, cache domain.EntryCache, logger zerolog.Logger) *SyncService {
	return &SyncService{
		api:    api,
		cache:  cache,
		logger: logger.With().Str("component", "sync").Logger(),
	}
}

// SyncRange fetches food entries for every day from start to end inclusive,
// in ascending order, caching each day as it lands. A failed day is logged
// and skipped; the walk never aborts early, so the result may cover fewer
// days than the window. Partial history beats an all-or-nothing failure.
func (s *SyncService) SyncRange(ctx context.Context, startDate, endDate string) ([]domain.DayEntries, error) {
	start, err := domain.ParseDay(startDate)
	if err != nil {
		return nil, err
	}
	end, err := domain.ParseDay(endDate)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, fmt.Errorf("end date %s before start date %s", endDate, startDate)
	}

	logger := s.logger.With().Str("run_id", uuid.NewString()).Logger()
	logger.Info().Str("start", startDate).Str("end", endDate).Msg("starting historical sync")

	var days []domain.DayEntries
	var failed int
	for cur := start; !cur.After(end); cur = cur.AddDate(0, 0, 1) {
		date := domain.FormatDay(cur)

		payload, err := s.api.GetFoodEntries(ctx, date)
		if err != nil {
			failed++
			logger.Warn().Err(err).Str("date", date).Msg("failed to fetch entries, continuing")
			continue
		}

		if err := s.cache.WriteDay(ctx, date, payload); err != nil {
			// the fetched day still counts; only the cache copy is stale
			logger.Warn().Err(err).Str("date", date).Msg("failed to cache entries, continuing")
		}

		days = append(days, domain.DayEntries{Date: date, Payload: payload})
	}

	logger.Info().Int("synced", len(days)).Int("failed", failed).Msg("historical sync finished")
	return days, nil
}

// CachedDay reads back one day's cached entries.
func (s *SyncService) CachedDay(ctx context.Context, date string) (any, bool, error) {
	if _, err := domain.ParseDay(date); err != nil {
		return nil, false, err
	}
	return s.cache.ReadDay(ctx, date)
}

// LoadExport imports a previously exported flat entry list into the cache,
// regrouped by day. Exported entries carry their day as a date_int day index;
// cache keys are normalized to YYYY-MM-DD. Returns per-date entry counts.
func (s *SyncService) LoadExport(ctx context.Context, entries []map[string]any) (map[string]int, error) {
	grouped := make(map[string][]map[string]any)
	for _, entry := range entries {
		date := exportEntryDate(entry)
		if date == "" {
			s.logger.Warn().Interface("entry", entry["food_entry_name"]).Msg("skipping entry without usable date_int")
			continue
		}
		grouped[date] = append(grouped[date], entry)
	}

	counts := make(map[string]int, len(grouped))
	for date, items := range grouped {
		if err := s.cache.WriteDay(ctx, date, items); err != nil {
			return counts, err
		}
		counts[date] = len(items)
		s.logger.Info().Str("date", date).Int("entries", len(items)).Msg("cached imported entries")
	}
	return counts, nil
}

// exportEntryDate resolves an exported entry's date_int to YYYY-MM-DD.
// Freshly decoded JSON yields a string; numbers are accepted for robustness.
func exportEntryDate(entry map[string]any) string {
	switch v := entry["date_int"].(type) {
	case string:
		idx, err := strconv.Atoi(v)
		if err != nil {
			return ""
		}
		return domain.FormatDay(domain.DayFromIndex(idx))
	case float64:
		return domain.FormatDay(domain.DayFromIndex(int(v)))
	default:
		return ""
	}
}

// Flatten collects the per-day payloads' entry lists into one flat list, the
// shape the JSON export and the bulk loader use.
func Flatten(days []domain.DayEntries) []map[string]any {
	var all []map[string]any
	for _, day := range days {
		all = append(all, domain.EntryList(day.Payload)...)
	}
	return all
}
