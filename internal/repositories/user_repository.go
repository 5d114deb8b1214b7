package repositories

import (
	"database/sql"
	"time"

	"ardhi/internal/models"
)

type UserRepository interface {
	Create(user *models.User) error
	GetByID(id int) (*models.User, error)
	GetByEmail(email string) (*models.User, error)

	// reset helpers
	SetResetCode(userID int, code string, expiresAt time.Time) error
	GetByActiveResetCode(code string) (*models.User, error)
	UpdatePasswordAndClearReset(userID int, passwordHash string) error
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

const userColumns = `
	id, name, email, password_hash, phone, role,
	reset_code, reset_code_expiry, created_at, updated_at
`

func (r *userRepository) scanUser(row *sql.Row) (*models.User, error) {
	u := &models.User{}
	var (
		phone     sql.NullString
		resetCode sql.NullString
		resetExp  sql.NullTime
	)
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &phone, &u.Role,
		&resetCode, &resetExp, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if phone.Valid {
		u.Phone = phone.String
	}
	if resetCode.Valid {
		s := resetCode.String
		u.ResetCode = &s
	}
	if resetExp.Valid {
		t := resetExp.Time
		u.ResetCodeExpiry = &t
	}
	return u, nil
}

func (r *userRepository) Create(user *models.User) error {
	const q = `
		INSERT INTO users (name, email, password_hash, phone, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	return r.DB.QueryRow(q,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Phone,
		user.Role,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) GetByID(id int) (*models.User, error) {
	row := r.DB.QueryRow(`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return r.scanUser(row)
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	row := r.DB.QueryRow(`SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return r.scanUser(row)
}

// ===== reset helpers =====

// SetResetCode — одна строка, один UPDATE: новый код перетирает старый.
func (r *userRepository) SetResetCode(userID int, code string, expiresAt time.Time) error {
	const q = `
		UPDATE users
		SET reset_code=$1, reset_code_expiry=$2, updated_at=NOW()
		WHERE id=$3
	`
	_, err := r.DB.Exec(q, code, expiresAt, userID)
	return err
}

// GetByActiveResetCode — только непросроченные коды.
func (r *userRepository) GetByActiveResetCode(code string) (*models.User, error) {
	const q = `
		SELECT ` + userColumns + `
		FROM users
		WHERE reset_code = $1 AND reset_code_expiry > NOW()
	`
	row := r.DB.QueryRow(q, code)
	return r.scanUser(row)
}

// UpdatePasswordAndClearReset — смена пароля и погашение кода одним UPDATE.
func (r *userRepository) UpdatePasswordAndClearReset(userID int, passwordHash string) error {
	const q = `
		UPDATE users
		SET password_hash=$1, reset_code=NULL, reset_code_expiry=NULL, updated_at=NOW()
		WHERE id=$2
	`
	_, err := r.DB.Exec(q, passwordHash, userID)
	return err
}
