package repositories

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"ardhi/internal/models"
)

type LandRepository interface {
	Create(land *models.Land) error
	GetByID(id int64) (*models.Land, error)
	List(filter models.LandFilter) ([]*models.Land, error)
	Update(land *models.Land) error
	Delete(id int64) error
}

type landRepository struct {
	db *sql.DB
}

func NewLandRepository(db *sql.DB) LandRepository {
	return &landRepository{db: db}
}

func (r *landRepository) Create(land *models.Land) error {
	const q = `
		INSERT INTO lands (
			title, description, price, size_acres,
			county, sub_county, lat, lng,
			title_deed_copy, user_id_copy, images,
			status, verified, owner_id
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(q,
		land.Title,
		land.Description,
		land.Price,
		land.SizeAcres,
		land.County,
		land.SubCounty,
		land.Lat,
		land.Lng,
		land.TitleDeedCopy,
		land.UserIDCopy,
		pq.StringArray(land.Images),
		land.Status,
		land.Verified,
		land.OwnerID,
	).Scan(&land.ID, &land.CreatedAt, &land.UpdatedAt)
}

const landSelect = `
	SELECT
		l.id, l.title, l.description, l.price, l.size_acres,
		l.county, l.sub_county, l.lat, l.lng,
		l.title_deed_copy, l.user_id_copy, l.images,
		l.status, l.verified, l.owner_id, l.created_at, l.updated_at,
		u.id, u.name, u.email, COALESCE(u.phone, '')
	FROM lands l
	JOIN users u ON u.id = l.owner_id
`

func scanLand(scan func(dest ...interface{}) error) (*models.Land, error) {
	l := &models.Land{}
	owner := &models.UserSummary{}
	var (
		description sql.NullString
		subCounty   sql.NullString
		lat, lng    sql.NullFloat64
		deed, idcp  sql.NullString
		images      pq.StringArray
	)
	err := scan(
		&l.ID, &l.Title, &description, &l.Price, &l.SizeAcres,
		&l.County, &subCounty, &lat, &lng,
		&deed, &idcp, &images,
		&l.Status, &l.Verified, &l.OwnerID, &l.CreatedAt, &l.UpdatedAt,
		&owner.ID, &owner.Name, &owner.Email, &owner.Phone,
	)
	if err != nil {
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
	if deed.Valid {
		l.TitleDeedCopy = deed.String
	}
	if idcp.Valid {
		l.UserIDCopy = idcp.String
	}
	l.Images = []string(images)
	l.Owner = owner
	return l, nil
}

func (r *landRepository) GetByID(id int64) (*models.Land, error) {
	row := r.db.QueryRow(landSelect+` WHERE l.id = $1`, id)
	l, err := scanLand(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return l, nil
}

func (r *landRepository) List(filter models.LandFilter) ([]*models.Land, error) {
	query := landSelect + ` WHERE 1=1`
	args := []interface{}{}
	i := 1

	if filter.County != "" {
		query += fmt.Sprintf(" AND l.county = $%d", i)
		args = append(args, filter.County)
		i++
	}
	if filter.Status != "" {
		query += fmt.Sprintf(" AND l.status = $%d", i)
		args = append(args, filter.Status)
		i++
	}
	if filter.MinPrice != nil {
		query += fmt.Sprintf(" AND l.price >= $%d", i)
		args = append(args, *filter.MinPrice)
		i++
	}
	if filter.MaxPrice != nil {
		query += fmt.Sprintf(" AND l.price <= $%d", i)
		args = append(args, *filter.MaxPrice)
		i++
	}

	query += ` ORDER BY l.created_at DESC`
	// без limit отдаём всю выборку целиком
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", i)
		args = append(args, filter.Limit)
		i++
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", i)
		args = append(args, filter.Offset)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*models.Land
	for rows.Next() {
		l, err := scanLand(rows.Scan)
		if err != nil {
			return nil, err
		}
		res = append(res, l)
	}
	return res, rows.Err()
}

func (r *landRepository) Update(land *models.Land) error {
	const q = `
		UPDATE lands
		SET title=$1, description=$2, price=$3, size_acres=$4,
			county=$5, sub_county=$6, lat=$7, lng=$8,
			status=$9, updated_at=NOW()
		WHERE id=$10
	`
	_, err := r.db.Exec(q,
		land.Title,
		land.Description,
		land.Price,
		land.SizeAcres,
		land.County,
		land.SubCounty,
		land.Lat,
		land.Lng,
		land.Status,
		land.ID,
	)
	return err
}

func (r *landRepository) Delete(id int64) error {
	_, err := r.db.Exec(`DELETE FROM lands WHERE id=$1`, id)
	return err
}
