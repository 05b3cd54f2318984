package controllers

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"
	log "github.com/spf13/jwalterweatherman"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/nlwcopa/bolao-web/database"
)

const (
	codeCharset  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength   = 6
	codeAttempts = 5
)

var ErrCodeExhausted = errors.New("could not generate a unique pool code")

// StoreController backs the local API stub.
type StoreController struct {
	queries *database.Queries
	newCode func() (string, error)
}

func NewStoreController(db database.DBTX) *StoreController {
	return &StoreController{queries: database.New(db), newCode: GenerateCode}
}

// GenerateCode returns a random invite code of uppercase letters and digits.
func GenerateCode() (string, error) {
	code := make([]byte, codeLength)
	for i := range code {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeCharset))))
		if err != nil {
			return "", err
		}
		code[i] = codeCharset[num.Int64()]
	}
	return string(code), nil
}

// ValidCode reports whether code has the shape of an invite code.
func ValidCode(code string) bool {
	if len(code) != codeLength {
		return false
	}
	for i := 0; i < len(code); i++ {
		if strings.IndexByte(codeCharset, code[i]) < 0 {
			return false
		}
	}
	return true
}

func (c *StoreController) CountPools(ctx context.Context) (int64, error) {
	return c.queries.CountPools(ctx)
}

func (c *StoreController) CountUsers(ctx context.Context) (int64, error) {
	return c.queries.CountUsers(ctx)
}

func (c *StoreController) CountGuesses(ctx context.Context) (int64, error) {
	return c.queries.CountGuesses(ctx)
}

// CreatePool stores a pool under a fresh code, regenerating the code on collision.
func (c *StoreController) CreatePool(ctx context.Context, title string) (*database.Pool, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}

	for range codeAttempts {
		code, err := c.newCode()
		if err != nil {
			return nil, fmt.Errorf("generate code: %w", err)
		}

		pool, err := c.queries.CreatePool(ctx, database.CreatePoolParams{
			ID:    uuid.NewString(),
			Title: title,
			Code:  code,
		})
		if err == nil {
			return &pool, nil
		}
		if !isUniqueViolation(err) {
			return nil, fmt.Errorf("insert pool: %w", err)
		}
		log.DEBUG.Printf("collision on code %s, regenerating", code)
	}
	return nil, ErrCodeExhausted
}

func (c *StoreController) FindPool(ctx context.Context, code string) (*database.Pool, error) {
	pool, err := c.queries.FindPoolByCode(ctx, code)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &pool, nil
}

func (c *StoreController) ListPools(ctx context.Context) ([]database.Pool, error) {
	return c.queries.ListPools(ctx)
}

// Seed inserts sample users and spreads guesses over them on a demo pool,
// so the landing page has non-zero counters during development.
func (c *StoreController) Seed(ctx context.Context, users, guesses int) error {
	if users <= 0 && guesses <= 0 {
		return nil
	}
	if guesses > 0 && users <= 0 {
		users = 1
	}

	userIDs := make([]string, 0, users)
	for i := range users {
		u, err := c.queries.CreateUser(ctx, database.CreateUserParams{
			ID:   uuid.NewString(),
			Name: fmt.Sprintf("Participante %d", i+1),
		})
		if err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
		userIDs = append(userIDs, u.ID)
	}

	if guesses <= 0 {
		return nil
	}
	pool, err := c.CreatePool(ctx, "Bolão de demonstração")
	if err != nil {
		return fmt.Errorf("seed pool: %w", err)
	}
	for i := range guesses {
		if _, err := c.queries.CreateGuess(ctx, database.CreateGuessParams{
			ID:     uuid.NewString(),
			PoolID: pool.ID,
			UserID: userIDs[i%len(userIDs)],
		}); err != nil {
			return fmt.Errorf("seed guess: %w", err)
		}
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	if sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
		return true
	}
	// without extended result codes only the primary code is reported
	return sqliteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(sqliteErr.Error(), "UNIQUE")
}
