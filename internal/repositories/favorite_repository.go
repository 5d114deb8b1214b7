package repositories

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"ardhi/internal/models"
)

// ErrDuplicateFavorite — нарушение уникального индекса (user_id, land_id).
var ErrDuplicateFavorite = errors.New("favorite already exists")

type FavoriteRepository interface {
	Create(userID int, landID int64) (*models.Favorite, error)
	Exists(userID int, landID int64) (bool, error)
	Delete(userID int, landID int64) (bool, error)
	ListByUser(userID int) ([]*models.Favorite, error)
}

type favoriteRepository struct {
	db *sql.DB
}

func NewFavoriteRepository(db *sql.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) Create(userID int, landID int64) (*models.Favorite, error) {
	const q = `
		INSERT INTO favorites (user_id, land_id)
		VALUES ($1, $2)
		RETURNING id, created_at
	`
	f := &models.Favorite{UserID: userID, LandID: landID}
	if err := r.db.QueryRow(q, userID, landID).Scan(&f.ID, &f.CreatedAt); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return nil, ErrDuplicateFavorite
		}
		return nil, err
	}
	return f, nil
}

func (r *favoriteRepository) Exists(userID int, landID int64) (bool, error) {
	var one int
	err := r.db.QueryRow(
		`SELECT 1 FROM favorites WHERE user_id=$1 AND land_id=$2`, userID, landID,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *favoriteRepository) Delete(userID int, landID int64) (bool, error) {
	res, err := r.db.Exec(`DELETE FROM favorites WHERE user_id=$1 AND land_id=$2`, userID, landID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *favoriteRepository) ListByUser(userID int) ([]*models.Favorite, error) {
	const q = `
		SELECT
			f.id, f.user_id, f.land_id, f.created_at,
			l.id, l.title, l.description, l.price, l.size_acres,
			l.county, l.sub_county, l.lat, l.lng, l.images,
			l.status, l.verified, l.owner_id, l.created_at, l.updated_at
		FROM favorites f
		JOIN lands l ON l.id = f.land_id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC
	`
	rows, err := r.db.Query(q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*models.Favorite
	for rows.Next() {
		f := &models.Favorite{}
		l := &models.Land{}
		var (
			description sql.NullString
			subCounty   sql.NullString
			lat, lng    sql.NullFloat64
			images      pq.StringArray
		)
		if err := rows.Scan(
			&f.ID, &f.UserID, &f.LandID, &f.CreatedAt,
			&l.ID, &l.Title, &description, &l.Price, &l.SizeAcres,
			&l.County, &subCounty, &lat, &lng, &images,
			&l.Status, &l.Verified, &l.OwnerID, &l.CreatedAt, &l.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if description.Valid {
			l.Description = description.String
		}
		if subCounty.Valid {
			l.SubCounty = subCounty.String
		}
		if lat.Valid {
			v := lat.Float64
			l.Lat = &v
		}
		if lng.Valid {
			v := lng.Float64
			l.Lng = &v
		}
		l.Images = []string(images)
		f.Land = l
		res = append(res, f)
	}
	return res, rows.Err()
}
