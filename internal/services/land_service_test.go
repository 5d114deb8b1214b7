package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ardhi/internal/models"
	"ardhi/internal/pdf"
)

type fakeBrochureGen struct {
	calls []pdf.BrochureData
}

func (f *fakeBrochureGen) GenerateBrochure(data pdf.BrochureData) (string, error) {
	f.calls = append(f.calls, data)
	return "/tmp/brochure.pdf", nil
}

func newLandServiceForTest() (LandService, *fakeLandRepo, *fakeUserRepo, *fakeBrochureGen) {
	landRepo := newFakeLandRepo()
	userRepo := newFakeUserRepo()
	gen := &fakeBrochureGen{}
	return NewLandService(landRepo, userRepo, gen), landRepo, userRepo, gen
}

func seedUser(t *testing.T, repo *fakeUserRepo, email string) *models.User {
	t.Helper()
	u := &models.User{Name: "Seller", Email: email, PasswordHash: "x", Role: "seller"}
	require.NoError(t, repo.Create(u))
	return u
}

func TestLandCreate_DefaultsAndOwnerCheck(t *testing.T) {
	svc, _, userRepo, _ := newLandServiceForTest()
	owner := seedUser(t, userRepo, "s@x.com")

	land := &models.Land{Title: "Plot", Price: 100000, SizeAcres: 1.5, County: "Kiambu", OwnerID: owner.ID}
	require.NoError(t, svc.Create(land))
	assert.Equal(t, models.LandStatusAvailable, land.Status)
	assert.NotZero(t, land.ID)

	// владелец обязан существовать
	err := svc.Create(&models.Land{Title: "Plot", Price: 1, SizeAcres: 1, County: "Kiambu", OwnerID: 999})
	assert.ErrorIs(t, err, ErrOwnerNotFound)
}

func TestLandUpdate_OwnerOnly(t *testing.T) {
	svc, _, userRepo, _ := newLandServiceForTest()
	owner := seedUser(t, userRepo, "owner@x.com")
	other := seedUser(t, userRepo, "other@x.com")

	land := &models.Land{Title: "Plot", Price: 100, SizeAcres: 2, County: "Kiambu", OwnerID: owner.ID}
	require.NoError(t, svc.Create(land))

	newTitle := "Prime plot"
	_, err := svc.Update(land.ID, other.ID, &models.LandUpdate{Title: &newTitle})
	assert.ErrorIs(t, err, ErrNotLandOwner)

	updated, err := svc.Update(land.ID, owner.ID, &models.LandUpdate{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, "Prime plot", updated.Title)
}

func TestLandUpdate_BadStatus(t *testing.T) {
	svc, _, userRepo, _ := newLandServiceForTest()
	owner := seedUser(t, userRepo, "owner@x.com")

	land := &models.Land{Title: "Plot", Price: 100, SizeAcres: 2, County: "Kiambu", OwnerID: owner.ID}
	require.NoError(t, svc.Create(land))

	bad := "reserved"
	_, err := svc.Update(land.ID, owner.ID, &models.LandUpdate{Status: &bad})
	assert.ErrorIs(t, err, ErrBadStatus)

	sold := models.LandStatusSold
	updated, err := svc.Update(land.ID, owner.ID, &models.LandUpdate{Status: &sold})
	require.NoError(t, err)
	assert.Equal(t, models.LandStatusSold, updated.Status)
}

func TestLandDelete_NotFound(t *testing.T) {
	svc, _, _, _ := newLandServiceForTest()
	assert.ErrorIs(t, svc.Delete(77), ErrLandNotFound)
}

func TestLandBrochure(t *testing.T) {
	svc, _, userRepo, gen := newLandServiceForTest()
	owner := seedUser(t, userRepo, "owner@x.com")

	land := &models.Land{Title: "Plot", Price: 100, SizeAcres: 2, County: "Kiambu", OwnerID: owner.ID}
	require.NoError(t, svc.Create(land))

	path, err := svc.Brochure(land.ID)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/brochure.pdf", path)
	require.Len(t, gen.calls, 1)
	assert.Equal(t, land.ID, gen.calls[0].LandID)
	assert.Equal(t, "Kiambu", gen.calls[0].County)

	_, err = svc.Brochure(404)
	assert.ErrorIs(t, err, ErrLandNotFound)
}

func TestFavorites(t *testing.T) {
	landRepo := newFakeLandRepo()
	userRepo := newFakeUserRepo()
	landSvc := NewLandService(landRepo, userRepo, &fakeBrochureGen{})
	favSvc := NewFavoriteService(newFakeFavoriteRepo(), landRepo)

	owner := seedUser(t, userRepo, "owner@x.com")
	buyer := seedUser(t, userRepo, "buyer@x.com")

	land := &models.Land{Title: "Plot", Price: 100, SizeAcres: 2, County: "Kiambu", OwnerID: owner.ID}
	require.NoError(t, landSvc.Create(land))

	fav, err := favSvc.Add(buyer.ID, land.ID)
	require.NoError(t, err)
	assert.Equal(t, land.ID, fav.LandID)

	_, err = favSvc.Add(buyer.ID, land.ID)
	assert.ErrorIs(t, err, ErrAlreadyFavorite)

	_, err = favSvc.Add(buyer.ID, 999)
	assert.ErrorIs(t, err, ErrLandNotFound)

	favs, err := favSvc.ListByUser(buyer.ID)
	require.NoError(t, err)
	assert.Len(t, favs, 1)

	require.NoError(t, favSvc.Remove(buyer.ID, land.ID))
	assert.ErrorIs(t, favSvc.Remove(buyer.ID, land.ID), ErrFavoriteNotFound)
}

// Exists ничего не видит, но вставка упирается в уникальный индекс
type racingFavoriteRepo struct {
	*fakeFavoriteRepo
}

func (f *racingFavoriteRepo) Exists(userID int, landID int64) (bool, error) {
	return false, nil
}

func TestFavoriteAdd_ConcurrentDuplicate(t *testing.T) {
	landRepo := newFakeLandRepo()
	userRepo := newFakeUserRepo()
	landSvc := NewLandService(landRepo, userRepo, &fakeBrochureGen{})
	favSvc := NewFavoriteService(&racingFavoriteRepo{newFakeFavoriteRepo()}, landRepo)

	owner := seedUser(t, userRepo, "owner@x.com")
	buyer := seedUser(t, userRepo, "buyer@x.com")

	land := &models.Land{Title: "Plot", Price: 100, SizeAcres: 2, County: "Kiambu", OwnerID: owner.ID}
	require.NoError(t, landSvc.Create(land))

	_, err := favSvc.Add(buyer.ID, land.ID)
	require.NoError(t, err)

	_, err = favSvc.Add(buyer.ID, land.ID)
	assert.ErrorIs(t, err, ErrAlreadyFavorite)
}
