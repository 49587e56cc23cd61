package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// User is a chatbot user identified by phone number.
type User struct {
	Phone      string
	SignViewed []string
	Pro        bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// User returns the user with the given phone, or (nil, nil) when absent.
func (s *Store) User(ctx context.Context, phone string) (*User, error) {
	q := builder().
		Select("phone", "sign_viewed", "pro", "created_at", "updated_at").
		From(entsql.Table("users")).
		Where(entsql.EQ("phone", phone))

	rows, err := s.query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}

	var (
		u                  User
		viewed             string
		created, updatedAt int64
	)
	if err := rows.Scan(&u.Phone, &viewed, &u.Pro, &created, &updatedAt); err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	if u.SignViewed, err = decodeIDs(viewed); err != nil {
		return nil, err
	}
	u.CreatedAt = time.Unix(0, created).UTC()
	u.UpdatedAt = time.Unix(0, updatedAt).UTC()
	return &u, nil
}

// ViewedSigns returns the user's viewing history in append order,
// duplicates included. An unknown user has an empty history.
func (s *Store) ViewedSigns(ctx context.Context, phone string) ([]string, error) {
	u, err := s.User(ctx, phone)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return []string{}, nil
	}
	return u.SignViewed, nil
}

const appendViewedSQL = `INSERT INTO users (phone, sign_viewed, pro, created_at, updated_at)
VALUES (?, json_array(?), 0, ?, ?)
ON CONFLICT(phone) DO UPDATE SET
	sign_viewed = json_insert(users.sign_viewed, '$[#]', ?),
	updated_at = excluded.updated_at`

// AppendViewedSign appends id to the user's history, creating the user if
// needed. The append is a single statement, so concurrent calls for the
// same phone never lose entries.
func (s *Store) AppendViewedSign(ctx context.Context, phone, id string) error {
	now := time.Now().UnixNano()
	var res sql.Result
	if err := s.drv.Exec(ctx, appendViewedSQL, []any{phone, id, now, now, id}, &res); err != nil {
		return fmt.Errorf("append viewed sign: %w", err)
	}
	return nil
}

// SetViewedSigns replaces the user's whole history.
func (s *Store) SetViewedSigns(ctx context.Context, phone string, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("encode viewed signs: %w", err)
	}
	now := time.Now().UnixNano()

	q := builder().Insert("users").
		Columns("phone", "sign_viewed", "pro", "created_at", "updated_at").
		Values(phone, string(data), false, now, now).
		OnConflict(
			entsql.ConflictColumns("phone"),
			entsql.ResolveWith(func(u *entsql.UpdateSet) {
				u.SetExcluded("sign_viewed")
				u.SetExcluded("updated_at")
			}),
		)
	if _, err := s.exec(ctx, q); err != nil {
		return fmt.Errorf("set viewed signs: %w", err)
	}
	return nil
}

// SetPlan records whether the user is on the pro plan, creating the user
// if needed.
func (s *Store) SetPlan(ctx context.Context, phone string, pro bool) error {
	now := time.Now().UnixNano()
	q := builder().Insert("users").
		Columns("phone", "sign_viewed", "pro", "created_at", "updated_at").
		Values(phone, "[]", pro, now, now).
		OnConflict(
			entsql.ConflictColumns("phone"),
			entsql.ResolveWith(func(u *entsql.UpdateSet) {
				u.SetExcluded("pro")
				u.SetExcluded("updated_at")
			}),
		)
	if _, err := s.exec(ctx, q); err != nil {
		return fmt.Errorf("set plan: %w", err)
	}
	return nil
}

// ResetUser deletes the user and all of the user's quizzes.
func (s *Store) ResetUser(ctx context.Context, phone string) error {
	return s.withTx(ctx, func(tx dialect.Tx) error {
		for _, table := range []string{"quizzes", "users"} {
			query, args := builder().Delete(table).Where(entsql.EQ("phone", phone)).Query()
			var res sql.Result
			if err := tx.Exec(ctx, query, args, &res); err != nil {
				return fmt.Errorf("delete from %s: %w", table, err)
			}
		}
		return nil
	})
}

func (s *Store) withTx(ctx context.Context, fn func(tx dialect.Tx) error) error {
	tx, err := s.drv.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

func decodeIDs(raw string) ([]string, error) {
	ids := []string{}
	if raw == "" {
		return ids, nil
	}
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, fmt.Errorf("decode viewed signs: %w", err)
	}
	return ids, nil
}
