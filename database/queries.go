package database

import (
	"context"
)

const countPools = `SELECT COUNT(*) FROM pools`

func (q *Queries) CountPools(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countPools)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const countUsers = `SELECT COUNT(*) FROM users`

func (q *Queries) CountUsers(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countUsers)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const countGuesses = `SELECT COUNT(*) FROM guesses`

func (q *Queries) CountGuesses(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countGuesses)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const createPool = `INSERT INTO pools (id, title, code) VALUES (?, ?, ?)
RETURNING id, title, code, created_at`

type CreatePoolParams struct {
	ID    string
	Title string
	Code  string
}

func (q *Queries) CreatePool(ctx context.Context, arg CreatePoolParams) (Pool, error) {
	row := q.db.QueryRowContext(ctx, createPool, arg.ID, arg.Title, arg.Code)
	var i Pool
	err := row.Scan(
		&i.ID,
		&i.Title,
		&i.Code,
		&i.CreatedAt,
	)
	return i, err
}

const findPoolByCode = `SELECT id, title, code, created_at FROM pools WHERE code = ? LIMIT 1`

func (q *Queries) FindPoolByCode(ctx context.Context, code string) (Pool, error) {
	row := q.db.QueryRowContext(ctx, findPoolByCode, code)
	var i Pool
	err := row.Scan(
		&i.ID,
		&i.Title,
		&i.Code,
		&i.CreatedAt,
	)
	return i, err
}

const listPools = `SELECT id, title, code, created_at FROM pools ORDER BY created_at, rowid`

func (q *Queries) ListPools(ctx context.Context) ([]Pool, error) {
	rows, err := q.db.QueryContext(ctx, listPools)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Pool
	for rows.Next() {
		var i Pool
		if err := rows.Scan(
			&i.ID,
			&i.Title,
			&i.Code,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const createUser = `INSERT INTO users (id, name) VALUES (?, ?)
RETURNING id, name, created_at`

type CreateUserParams struct {
	ID   string
	Name string
}

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (User, error) {
	row := q.db.QueryRowContext(ctx, createUser, arg.ID, arg.Name)
	var i User
	err := row.Scan(&i.ID, &i.Name, &i.CreatedAt)
	return i, err
}

const createGuess = `INSERT INTO guesses (id, pool_id, user_id) VALUES (?, ?, ?)
RETURNING id, pool_id, user_id, created_at`

type CreateGuessParams struct {
	ID     string
	PoolID string
	UserID string
}

func (q *Queries) CreateGuess(ctx context.Context, arg CreateGuessParams) (Guess, error) {
	row := q.db.QueryRowContext(ctx, createGuess, arg.ID, arg.PoolID, arg.UserID)
	var i Guess
	err := row.Scan(
		&i.ID,
		&i.PoolID,
		&i.UserID,
		&i.CreatedAt,
	)
	return i, err
}
