package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	domain "github.com/skillbridge/marketplace/internal/domain/complaint"
	"github.com/skillbridge/marketplace/internal/httperr"
	"github.com/skillbridge/marketplace/internal/models"
)

var testDBSeq int

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	testDBSeq++
	dsn := fmt.Sprintf("file:repo_test_%d?mode=memory&cache=shared", testDBSeq)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Service{},
		&models.Booking{},
		&models.Review{},
		&models.Complaint{},
		&models.AdminActionLog{},
	))

	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string, role models.Role) *models.User {
	t.Helper()
	u := &models.User{Email: email, Role: role, Active: true}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedService(t *testing.T, db *gorm.DB, providerID uint, title string) *models.Service {
	t.Helper()
	svc := &models.Service{ProviderID: providerID, Title: title, Price: 50}
	require.NoError(t, db.Create(svc).Error)
	return svc
}

func TestBookingRepository_DuplicateSlot(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookingGormRepository(db)
	ctx := context.Background()

	provider := seedUser(t, db, "provider@example.com", models.RoleProvider)
	seekerU := seedUser(t, db, "seeker@example.com", models.RoleSeeker)
	svc := seedService(t, db, provider.ID, "Cleaning")

	slot := time.Date(2026, 9, 10, 14, 0, 0, 0, time.UTC)

	first := &models.Booking{ServiceID: svc.ID, SeekerID: seekerU.ID, Status: "PENDING", BookingDate: slot}
	require.NoError(t, repo.Create(ctx, first))

	dup := &models.Booking{ServiceID: svc.ID, SeekerID: seekerU.ID, Status: "PENDING", BookingDate: slot}
	err := repo.Create(ctx, dup)

	fe, ok := httperr.AsField(err)
	require.True(t, ok)
	assert.Equal(t, "booking_date", fe.Field)
	assert.Equal(t, "duplicate_booking", fe.Code)

	// A different slot for the same pair is fine.
	other := &models.Booking{ServiceID: svc.ID, SeekerID: seekerU.ID, Status: "PENDING", BookingDate: slot.Add(time.Hour)}
	assert.NoError(t, repo.Create(ctx, other))
}

func TestBookingRepository_ListForProvider(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookingGormRepository(db)
	ctx := context.Background()

	p1 := seedUser(t, db, "p1@example.com", models.RoleProvider)
	p2 := seedUser(t, db, "p2@example.com", models.RoleProvider)
	s := seedUser(t, db, "s@example.com", models.RoleSeeker)

	svc1 := seedService(t, db, p1.ID, "One")
	svc2 := seedService(t, db, p2.ID, "Two")

	base := time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, &models.Booking{ServiceID: svc1.ID, SeekerID: s.ID, Status: "PENDING", BookingDate: base}))
	require.NoError(t, repo.Create(ctx, &models.Booking{ServiceID: svc1.ID, SeekerID: s.ID, Status: "PENDING", BookingDate: base.Add(time.Hour)}))
	require.NoError(t, repo.Create(ctx, &models.Booking{ServiceID: svc2.ID, SeekerID: s.ID, Status: "PENDING", BookingDate: base}))

	got, total, err := repo.ListForProvider(ctx, p1.ID, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, got, 2)
	for _, b := range got {
		assert.Equal(t, svc1.ID, b.ServiceID)
		assert.Equal(t, p1.ID, b.Service.ProviderID)
	}
}

func TestBookingRepository_GetByIDPreloadsParticipants(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookingGormRepository(db)
	ctx := context.Background()

	p := seedUser(t, db, "p@example.com", models.RoleProvider)
	s := seedUser(t, db, "s@example.com", models.RoleSeeker)
	svc := seedService(t, db, p.ID, "Tutoring")

	created := &models.Booking{ServiceID: svc.ID, SeekerID: s.ID, Status: "PENDING", BookingDate: time.Now().UTC()}
	require.NoError(t, repo.Create(ctx, created))

	b, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, s.Email, b.Seeker.Email)
	assert.Equal(t, p.Email, b.Service.Provider.Email)
}

func TestReviewRepository_OneReviewPerSeeker(t *testing.T) {
	db := newTestDB(t)
	repo := NewReviewGormRepository(db)
	ctx := context.Background()

	p := seedUser(t, db, "p@example.com", models.RoleProvider)
	s := seedUser(t, db, "s@example.com", models.RoleSeeker)
	svc := seedService(t, db, p.ID, "Cleaning")

	require.NoError(t, repo.Create(ctx, &models.Review{ServiceID: svc.ID, SeekerID: s.ID, Rating: 5}))

	err := repo.Create(ctx, &models.Review{ServiceID: svc.ID, SeekerID: s.ID, Rating: 1})
	fe, ok := httperr.AsField(err)
	require.True(t, ok)
	assert.Equal(t, "already_reviewed", fe.Code)

	// A different seeker can still review.
	s2 := seedUser(t, db, "s2@example.com", models.RoleSeeker)
	assert.NoError(t, repo.Create(ctx, &models.Review{ServiceID: svc.ID, SeekerID: s2.ID, Rating: 4}))
}

func TestUserRepository_Lookups(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserGormRepository(db)
	ctx := context.Background()

	uid := "fb_xyz"
	u := &models.User{Email: "alice@example.com", Role: models.RoleSeeker, Active: true, IdentityUID: &uid}
	require.NoError(t, repo.Create(ctx, u))

	byEmail, err := repo.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	byUID, err := repo.FindByIdentityUID(ctx, "fb_xyz")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byUID.ID)

	_, err = repo.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestComplaintRepository_ListFilters(t *testing.T) {
	db := newTestDB(t)
	repo := NewComplaintGormRepository(db)
	ctx := context.Background()

	p := seedUser(t, db, "p@example.com", models.RoleProvider)
	a := seedUser(t, db, "a@example.com", models.RoleSeeker)
	b := seedUser(t, db, "b@example.com", models.RoleSeeker)
	svc := seedService(t, db, p.ID, "Cleaning")

	require.NoError(t, repo.Create(ctx, &models.Complaint{UserID: a.ID, ComplaintType: "SERVICE_ISSUE", Description: "x", Status: "PENDING", ServiceID: &svc.ID}))
	require.NoError(t, repo.Create(ctx, &models.Complaint{UserID: a.ID, ComplaintType: "OTHER", Description: "y", Status: "PENDING"}))
	require.NoError(t, repo.Create(ctx, &models.Complaint{UserID: b.ID, ComplaintType: "OTHER", Description: "z", Status: "PENDING"}))

	byUser, total, err := repo.List(ctx, domain.ListFilter{UserID: a.ID}, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, byUser, 2)

	byType, total, err := repo.List(ctx, domain.ListFilter{Type: "OTHER"}, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, byType, 2)

	byService, total, err := repo.List(ctx, domain.ListFilter{ServiceID: svc.ID}, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, byService, 1)
	assert.Equal(t, a.ID, byService[0].UserID)
	assert.Equal(t, a.Email, byService[0].User.Email)
}

func TestComplaintRepository_ExistenceChecks(t *testing.T) {
	db := newTestDB(t)
	repo := NewComplaintGormRepository(db)
	ctx := context.Background()

	p := seedUser(t, db, "p@example.com", models.RoleProvider)
	svc := seedService(t, db, p.ID, "Cleaning")

	ok, err := repo.ServiceExists(ctx, svc.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.ServiceExists(ctx, svc.ID+100)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.BookingExists(ctx, 1)
	require.NoError(t, err)
	assert.False(t, ok)
}
