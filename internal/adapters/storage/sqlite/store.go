package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/lmoretti/mockview/internal/domain"
)

// Store persists interviews in a single SQLite table with the turn history
// marshaled into a JSON column. One row per interview keeps every write a
// single atomic statement.
type Store struct {
	db *sql.DB
}

func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	s := &Store{db: db}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

func (s *Store) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS interviews (
		id TEXT PRIMARY KEY,
		job_role TEXT NOT NULL,
		tech_stack TEXT NOT NULL,
		history_json TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

type turnRow struct {
	Speaker   string    `json:"speaker"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

func toTurnRows(history []domain.Turn) []turnRow {
	rows := make([]turnRow, len(history))
	for i, t := range history {
		rows[i] = turnRow{
			Speaker:   string(t.Speaker),
			Text:      t.Text,
			Timestamp: t.Timestamp,
		}
	}
	return rows
}

func fromTurnRows(rows []turnRow) []domain.Turn {
	history := make([]domain.Turn, len(rows))
	for i, r := range rows {
		history[i] = domain.Turn{
			Speaker:   domain.Speaker(r.Speaker),
			Text:      r.Text,
			Timestamp: r.Timestamp,
		}
	}
	return history
}

func (s *Store) Create(iv *domain.Interview) error {
	historyJSON, err := json.Marshal(toTurnRows(iv.History))
	if err != nil {
		return err
	}

	query := `
		INSERT INTO interviews (id, job_role, tech_stack, history_json, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err = s.db.Exec(
		query,
		string(iv.ID),
		iv.JobRole,
		iv.TechStack,
		historyJSON,
		iv.CreatedAt,
	)

	return err
}

func (s *Store) Get(id domain.InterviewID) (*domain.Interview, error) {
	query := `
		SELECT id, job_role, tech_stack, history_json, created_at
		FROM interviews
		WHERE id = ?
	`

	var (
		rowID       string
		jobRole     string
		techStack   string
		historyJSON []byte
		createdAt   time.Time
	)

	err := s.db.QueryRow(query, string(id)).Scan(&rowID, &jobRole, &techStack, &historyJSON, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var rows []turnRow
	if err := json.Unmarshal(historyJSON, &rows); err != nil {
		return nil, err
	}

	return &domain.Interview{
		ID:        domain.InterviewID(rowID),
		JobRole:   jobRole,
		TechStack: techStack,
		History:   fromTurnRows(rows),
		CreatedAt: createdAt,
	}, nil
}

func (s *Store) Save(iv *domain.Interview) error {
	historyJSON, err := json.Marshal(toTurnRows(iv.History))
	if err != nil {
		return err
	}

	query := `
		UPDATE interviews
		SET job_role = ?, tech_stack = ?, history_json = ?
		WHERE id = ?
	`

	res, err := s.db.Exec(query, iv.JobRole, iv.TechStack, historyJSON, string(iv.ID))
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (s *Store) ListRecent(limit int) ([]*domain.Interview, error) {
	query := `
		SELECT id, job_role, tech_stack, history_json, created_at
		FROM interviews
		ORDER BY created_at DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Interview
	for rows.Next() {
		var (
			rowID       string
			jobRole     string
			techStack   string
			historyJSON []byte
			createdAt   time.Time
		)
		if err := rows.Scan(&rowID, &jobRole, &techStack, &historyJSON, &createdAt); err != nil {
			return nil, err
		}

		var turns []turnRow
		if err := json.Unmarshal(historyJSON, &turns); err != nil {
			return nil, err
		}

		out = append(out, &domain.Interview{
			ID:        domain.InterviewID(rowID),
			JobRole:   jobRole,
			TechStack: techStack,
			History:   fromTurnRows(turns),
			CreatedAt: createdAt,
		})
	}

	return out, rows.Err()
}

func (s *Store) Close() error {
	return s.db.Close()
}
