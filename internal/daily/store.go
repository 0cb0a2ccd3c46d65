package daily

import (
	"context"
	"database/sql"
)

// Result is one player's finished daily puzzle: their count guess against
// the true occurrence count.
type Result struct {
	UserID    string `json:"userId"`
	Date      string `json:"date"`
	Size      int    `json:"size"`
	Guess     int    `json:"guess"`
	TrueCount int    `json:"trueCount"`
	Correct   bool   `json:"correct"`
	ElapsedMs int    `json:"elapsedMs"`
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

func (s *Store) AlreadyPlayed(ctx context.Context, userID, date string) (bool, error) {
	var cnt int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM daily_results WHERE user_id=? AND date=?",
		userID, date,
	).Scan(&cnt)
	return cnt > 0, err
}

func (s *Store) InsertResult(ctx context.Context, r Result) error {
	correct := 0
	if r.Correct {
		correct = 1
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO daily_results(user_id, date, size, guess, true_count, correct, elapsed_ms)
		 VALUES(?,?,?,?,?,?,?)`,
		r.UserID, r.Date, r.Size, r.Guess, r.TrueCount, correct, r.ElapsedMs,
	)
	return err
}

// LBRow is one leaderboard entry. Miss is the absolute distance between the
// guess and the true count; 0 means a perfect call.
type LBRow struct {
	UserID    string `json:"userId"`
	Guess     int    `json:"guess"`
	Miss      int    `json:"miss"`
	ElapsedMs int    `json:"elapsedMs"`
}

func (s *Store) Leaderboard(ctx context.Context, date string, limit int) ([]LBRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, guess, ABS(guess - true_count) AS miss, elapsed_ms
		 FROM daily_results
		 WHERE date=?
		 ORDER BY miss ASC, elapsed_ms ASC, created_at ASC
		 LIMIT ?`, date, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []LBRow
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.UserID, &r.Guess, &r.Miss, &r.ElapsedMs); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
