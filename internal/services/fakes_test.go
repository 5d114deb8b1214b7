package services

import (
	"errors"
	"sort"
	"time"

	"ardhi/internal/models"
	"ardhi/internal/repositories"
)

// in-memory репозитории для юнит-тестов сервисов

type fakeUserRepo struct {
	seq   int
	users map[int]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int]*models.User{}}
}

func (f *fakeUserRepo) Create(u *models.User) error {
	f.seq++
	u.ID = f.seq
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByID(id int) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) SetResetCode(userID int, code string, expiresAt time.Time) error {
	u := f.users[userID]
	u.ResetCode = &code
	u.ResetCodeExpiry = &expiresAt
	return nil
}

func (f *fakeUserRepo) GetByActiveResetCode(code string) (*models.User, error) {
	for _, u := range f.users {
		if u.ResetCode != nil && *u.ResetCode == code &&
			u.ResetCodeExpiry != nil && u.ResetCodeExpiry.After(time.Now()) {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) UpdatePasswordAndClearReset(userID int, passwordHash string) error {
	u := f.users[userID]
	u.PasswordHash = passwordHash
	u.ResetCode = nil
	u.ResetCodeExpiry = nil
	return nil
}

type fakeLandRepo struct {
	seq   int64
	lands map[int64]*models.Land
}

func newFakeLandRepo() *fakeLandRepo {
	return &fakeLandRepo{lands: map[int64]*models.Land{}}
}

func (f *fakeLandRepo) Create(l *models.Land) error {
	f.seq++
	l.ID = f.seq
	l.CreatedAt = time.Now()
	l.UpdatedAt = l.CreatedAt
	f.lands[l.ID] = l
	return nil
}

func (f *fakeLandRepo) GetByID(id int64) (*models.Land, error) {
	l, ok := f.lands[id]
	if !ok {
		return nil, nil
	}
	return l, nil
}

func (f *fakeLandRepo) List(filter models.LandFilter) ([]*models.Land, error) {
	var res []*models.Land
	for _, l := range f.lands {
		if filter.County != "" && l.County != filter.County {
			continue
		}
		if filter.Status != "" && l.Status != filter.Status {
			continue
		}
		if filter.MinPrice != nil && l.Price < *filter.MinPrice {
			continue
		}
		if filter.MaxPrice != nil && l.Price > *filter.MaxPrice {
			continue
		}
		res = append(res, l)
	}
	return paginateLands(res, filter), nil
}

// новые записи первыми, как ORDER BY created_at DESC
func paginateLands(res []*models.Land, filter models.LandFilter) []*models.Land {
	sort.Slice(res, func(i, j int) bool { return res[i].ID > res[j].ID })
	if filter.Offset > 0 {
		if filter.Offset >= len(res) {
			return nil
		}
		res = res[filter.Offset:]
	}
	if filter.Limit > 0 && len(res) > filter.Limit {
		res = res[:filter.Limit]
	}
	return res
}

func (f *fakeLandRepo) Update(l *models.Land) error {
	f.lands[l.ID] = l
	return nil
}

func (f *fakeLandRepo) Delete(id int64) error {
	delete(f.lands, id)
	return nil
}

type fakeFavoriteRepo struct {
	seq  int64
	favs map[int64]*models.Favorite
}

func newFakeFavoriteRepo() *fakeFavoriteRepo {
	return &fakeFavoriteRepo{favs: map[int64]*models.Favorite{}}
}

func (f *fakeFavoriteRepo) Create(userID int, landID int64) (*models.Favorite, error) {
	// уникальный индекс (user_id, land_id)
	for _, fav := range f.favs {
		if fav.UserID == userID && fav.LandID == landID {
			return nil, repositories.ErrDuplicateFavorite
		}
	}
	f.seq++
	fav := &models.Favorite{ID: f.seq, UserID: userID, LandID: landID, CreatedAt: time.Now()}
	f.favs[fav.ID] = fav
	return fav, nil
}

func (f *fakeFavoriteRepo) Exists(userID int, landID int64) (bool, error) {
	for _, fav := range f.favs {
		if fav.UserID == userID && fav.LandID == landID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeFavoriteRepo) Delete(userID int, landID int64) (bool, error) {
	for id, fav := range f.favs {
		if fav.UserID == userID && fav.LandID == landID {
			delete(f.favs, id)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeFavoriteRepo) ListByUser(userID int) ([]*models.Favorite, error) {
	var res []*models.Favorite
	for _, fav := range f.favs {
		if fav.UserID == userID {
			res = append(res, fav)
		}
	}
	return res, nil
}

type fakeEmailService struct {
	welcomes   []string
	resetCodes map[string]string // email -> code
	failSend   bool
}

func newFakeEmailService() *fakeEmailService {
	return &fakeEmailService{resetCodes: map[string]string{}}
}

func (f *fakeEmailService) SendWelcomeEmail(email, name string) error {
	f.welcomes = append(f.welcomes, email)
	return nil
}

func (f *fakeEmailService) SendResetCodeEmail(email, code string) error {
	if f.failSend {
		return errDialFailed
	}
	f.resetCodes[email] = code
	return nil
}

var errDialFailed = errors.New("smtp dial failed")
