package analytics

import (
	"context"
	"database/sql"
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/skillbridge/marketplace/internal/models"
)

// Service computes platform rollups straight from the database. Nothing is
// cached or materialized; every call sees live data.
type Service struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Service {
	return &Service{db: db}
}

type Overview struct {
	UsersByRole        map[string]int64 `json:"users_by_role"`
	BookingsByStatus   map[string]int64 `json:"bookings_by_status"`
	ComplaintsByStatus map[string]int64 `json:"complaints_by_status"`
	ServicesByCategory map[string]int64 `json:"services_by_category"`

	AverageServicePrice float64 `json:"average_service_price"`
	AverageRating       float64 `json:"average_rating"`

	BookingsPerDay []DayCount `json:"bookings_per_day"`
	NewUsersPerDay []DayCount `json:"new_users_per_day"`
}

func (s *Service) Overview(ctx context.Context, days int) (*Overview, error) {
	now := time.Now().UTC()
	out := &Overview{}

	var err error
	if out.UsersByRole, err = s.countBy(ctx, &models.User{}, "role"); err != nil {
		return nil, err
	}
	if out.BookingsByStatus, err = s.countBy(ctx, &models.Booking{}, "status"); err != nil {
		return nil, err
	}
	if out.ComplaintsByStatus, err = s.countBy(ctx, &models.Complaint{}, "status"); err != nil {
		return nil, err
	}
	if out.ServicesByCategory, err = s.countServicesByCategory(ctx); err != nil {
		return nil, err
	}

	if out.AverageServicePrice, err = s.average(ctx, &models.Service{}, "price"); err != nil {
		return nil, err
	}
	if out.AverageRating, err = s.average(ctx, &models.Review{}, "rating"); err != nil {
		return nil, err
	}

	if out.BookingsPerDay, err = s.perDay(ctx, &models.Booking{}, now, days); err != nil {
		return nil, err
	}
	if out.NewUsersPerDay, err = s.perDay(ctx, &models.User{}, now, days); err != nil {
		return nil, err
	}

	return out, nil
}

func (s *Service) countBy(ctx context.Context, model any, column string) (map[string]int64, error) {
	var rows []struct {
		Key   string
		Count int64
	}
	if err := s.db.WithContext(ctx).
		Model(model).
		Select(column + " AS key, COUNT(*) AS count").
		Group(column).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Key] = row.Count
	}
	return out, nil
}

func (s *Service) countServicesByCategory(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Key   string
		Count int64
	}
	if err := s.db.WithContext(ctx).
		Model(&models.Service{}).
		Select("COALESCE(categories.name, 'uncategorized') AS key, COUNT(*) AS count").
		Joins("LEFT JOIN categories ON categories.id = services.category_id").
		Group("categories.name").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Key] = row.Count
	}
	return out, nil
}

// average returns 0 for an empty table, rounded to two decimals otherwise.
func (s *Service) average(ctx context.Context, model any, column string) (float64, error) {
	var avg sql.NullFloat64
	if err := s.db.WithContext(ctx).
		Model(model).
		Select("AVG(" + column + ")").
		Scan(&avg).Error; err != nil {
		return 0, err
	}
	if !avg.Valid {
		return 0, nil
	}
	return Round2(avg.Float64), nil
}

func (s *Service) perDay(ctx context.Context, model any, now time.Time, days int) ([]DayCount, error) {
	start := dayStart(now).AddDate(0, 0, -(days - 1))

	var times []time.Time
	if err := s.db.WithContext(ctx).
		Model(model).
		Where("created_at >= ?", start).
		Pluck("created_at", &times).Error; err != nil {
		return nil, err
	}

	return DailyCounts(times, now, days), nil
}

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
