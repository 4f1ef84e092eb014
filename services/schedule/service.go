// Package schedule assembles a barber's raw schedule from the upstream API
// and turns it into a slot plan for a selected date.
package schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"trimly/models"
	"trimly/services/slotplan"
	"trimly/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const cacheKeyPrefix = "schedule:"

// Source is the slice of the upstream client the planner needs.
type Source interface {
	GetBarberDaysOff(ctx context.Context, barberID string) ([]string, error)
	GetBarberWorkingHours(ctx context.Context, barberID string) (string, error)
	GetBarberBookedTimes(ctx context.Context, barberID string) ([]time.Time, error)
}

// Service fetches schedule data, normalizes it once to the shop's local
// wall clock, and computes slots. Schedule snapshots are cached briefly;
// slots are always recomputed.
type Service struct {
	Source   Source
	Cache    *redis.Client // nil disables caching
	Location *time.Location
	CacheTTL time.Duration
}

// NewService wires a planner service with the default 60s snapshot TTL.
func NewService(source Source, cache *redis.Client, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{Source: source, Cache: cache, Location: loc, CacheTTL: 60 * time.Second}
}

// AvailableSlots returns the ordered slot plan for the barber on date, for a
// booking of the given total duration in minutes. Degraded schedule data
// (malformed hours, day off) yields an empty plan; only upstream fetch
// failures surface as errors.
func (s *Service) AvailableSlots(ctx context.Context, barberID string, date time.Time, duration int) ([]models.Slot, error) {
	sched, err := s.fetchSchedule(ctx, barberID)
	if err != nil {
		return nil, fmt.Errorf("fetch schedule for barber %s: %w", barberID, err)
	}

	booked := BookedMinutesOn(sched.BookedTimes, date, s.Location)
	return slotplan.PlanDay(date.In(s.Location), sched.DaysOff, sched.WorkingHours, duration, booked), nil
}

func (s *Service) fetchSchedule(ctx context.Context, barberID string) (models.BarberSchedule, error) {
	logger := utils.GetLogger()

	if s.Cache != nil {
		if data, err := s.Cache.Get(ctx, cacheKeyPrefix+barberID).Result(); err == nil {
			var cached models.BarberSchedule
			if err := json.Unmarshal([]byte(data), &cached); err == nil {
				return cached, nil
			}
			logger.Warn("discarding unreadable schedule cache entry", zap.String("barberID", barberID))
		}
	}

	daysOff, err := s.Source.GetBarberDaysOff(ctx, barberID)
	if err != nil {
		return models.BarberSchedule{}, err
	}
	hours, err := s.Source.GetBarberWorkingHours(ctx, barberID)
	if err != nil {
		return models.BarberSchedule{}, err
	}
	booked, err := s.Source.GetBarberBookedTimes(ctx, barberID)
	if err != nil {
		return models.BarberSchedule{}, err
	}

	sched := models.BarberSchedule{
		WorkingHours: hours,
		DaysOff:      daysOff,
		BookedTimes:  booked,
	}

	if s.Cache != nil {
		if data, err := json.Marshal(sched); err == nil {
			if err := s.Cache.Set(ctx, cacheKeyPrefix+barberID, data, s.CacheTTL).Err(); err != nil {
				logger.Warn("failed to cache schedule snapshot",
					zap.String("barberID", barberID), zap.Error(err))
			}
		}
	}
	return sched, nil
}
