package database

// CreatedAt columns hold unix seconds.

type Pool struct {
	ID        string
	Title     string
	Code      string
	CreatedAt int64
}

type User struct {
	ID        string
	Name      string
	CreatedAt int64
}

type Guess struct {
	ID        string
	PoolID    string
	UserID    string
	CreatedAt int64
}
