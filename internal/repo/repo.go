package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"
)

type Profile struct {
	ID          int    `json:"id"`
	Login       string `json:"login"`
	Email       string `json:"email"`
	Description string `json:"description"`
}

// Calculation is one saved design run: the request as submitted and the
// report it produced, both stored as JSON.
type Calculation struct {
	ID        int             `json:"id"`
	Standard  string          `json:"standard"`
	Request   json.RawMessage `json:"request"`
	Report    json.RawMessage `json:"report"`
	CreatedAt time.Time       `json:"created_at"`
}

type Repository interface {
	CreateUser(ctx context.Context, login, email, password string) (int, error)
	GetBylogin(ctx context.Context, login string) (int, string, error)
	GetProfileByID(ctx context.Context, id int) (Profile, error)
	UpdateProfile(ctx context.Context, id int, login, description string) error
	SaveCalculation(ctx context.Context, userID int, standard string, request, report []byte) (int, error)
	ListCalculations(ctx context.Context, userID int, limit int) ([]Calculation, error)
}

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresDB(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateUser(ctx context.Context, login, email, password string) (int, error) {
	var id int
	query := "INSERT INTO users (login, email, password) VALUES ($1, $2, $3) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, login, email, password).Scan(&id)
	return id, err
}

func (r *PostgresRepository) GetBylogin(ctx context.Context, login string) (int, string, error) {
	var id int
	var hash string

	query := "SELECT id, password FROM users WHERE login=$1"

	err := r.db.QueryRowContext(ctx, query, login).Scan(&id, &hash)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, "", nil
		}
		return 0, "", err
	}
	return id, hash, nil
}

func (r *PostgresRepository) GetProfileByID(ctx context.Context, id int) (Profile, error) {
	var p Profile
	query := "SELECT id, login, email, COALESCE(description, '') FROM users WHERE id=$1"
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Login, &p.Email, &p.Description)
	return p, err
}

func (r *PostgresRepository) UpdateProfile(ctx context.Context, id int, login, description string) error {
	query := "UPDATE users SET login=$2, description=$3 WHERE id=$1"
	_, err := r.db.ExecContext(ctx, query, id, login, description)
	return err
}

func (r *PostgresRepository) SaveCalculation(ctx context.Context, userID int, standard string, request, report []byte) (int, error) {
	var id int
	query := "INSERT INTO calculations (user_id, standard, request, report) VALUES ($1, $2, $3, $4) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, userID, standard, request, report).Scan(&id)
	return id, err
}

func (r *PostgresRepository) ListCalculations(ctx context.Context, userID int, limit int) ([]Calculation, error) {
	if limit <= 0 {
		limit = 50
	}
	query := "SELECT id, standard, request, report, created_at FROM calculations WHERE user_id=$1 ORDER BY created_at DESC LIMIT $2"
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Calculation
	for rows.Next() {
		var c Calculation
		if err := rows.Scan(&c.ID, &c.Standard, &c.Request, &c.Report, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
