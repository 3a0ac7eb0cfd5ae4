package cards

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Note is a stored note, the source record of a card.
type Note struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	Pinned    bool       `json:"pinned"`
	Archived  bool       `json:"archived"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// ErrNotFound is returned when a note does not exist or was deleted.
var ErrNotFound = errors.New("note not found")

// DBFileName is the database file name inside the data directory.
const DBFileName = "cards.db"

// Store handles SQLite operations for notes.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (creating if needed) the database at dbPath.
func NewStore(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return store, nil
}

// DefaultDBPath returns the database path inside dataDir.
func DefaultDBPath(dataDir string) string {
	return filepath.Join(dataDir, DBFileName)
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) initSchema() error {
	schema := `
CREATE TABLE IF NOT EXISTS notes (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    content TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    pinned INTEGER DEFAULT 0,
    archived INTEGER DEFAULT 0,
    deleted_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_notes_updated ON notes(updated_at DESC);
CREATE INDEX IF NOT EXISTS idx_notes_deleted ON notes(deleted_at);
`
	_, err := s.db.Exec(schema)
	return err
}

// generateID creates a note ID with "nt-" prefix and 8 hex chars.
func generateID() (string, error) {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return "nt-" + hex.EncodeToString(b), nil
}

// Create inserts a new note. The title is taken from the first content line
// when empty.
func (s *Store) Create(title, content string) (*Note, error) {
	id, err := generateID()
	if err != nil {
		return nil, fmt.Errorf("generate ID: %w", err)
	}
	if title == "" {
		title = titleFromContent(content)
	}

	now := time.Now().UTC()
	note := &Note{
		ID:        id,
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err = s.db.Exec(`
		INSERT INTO notes (id, title, content, created_at, updated_at, pinned, archived)
		VALUES (?, ?, ?, ?, ?, 0, 0)
	`, note.ID, note.Title, note.Content,
		note.CreatedAt.Format(time.RFC3339Nano),
		note.UpdatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return nil, fmt.Errorf("insert note: %w", err)
	}
	return note, nil
}

// Update writes title, content, pinned and archived for an existing note and
// bumps its updated_at.
func (s *Store) Update(note *Note) error {
	note.UpdatedAt = time.Now().UTC()

	res, err := s.db.Exec(`
		UPDATE notes SET title = ?, content = ?, updated_at = ?, pinned = ?, archived = ?
		WHERE id = ? AND deleted_at IS NULL
	`, note.Title, note.Content,
		note.UpdatedAt.Format(time.RFC3339Nano),
		boolToInt(note.Pinned),
		boolToInt(note.Archived),
		note.ID)
	if err != nil {
		return fmt.Errorf("update note: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, note.ID)
	}
	return nil
}

// Delete performs a soft delete.
func (s *Store) Delete(id string) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.db.Exec(`
		UPDATE notes SET deleted_at = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`, now, now, id)
	if err != nil {
		return fmt.Errorf("soft delete note: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// Get retrieves a note by ID, including soft-deleted notes. It returns nil
// without error when the note does not exist.
func (s *Store) Get(id string) (*Note, error) {
	row := s.db.QueryRow(`
		SELECT id, title, content, created_at, updated_at, pinned, archived, deleted_at
		FROM notes WHERE id = ?
	`, id)
	note, err := scanNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query note: %w", err)
	}
	return note, nil
}

// List retrieves all non-deleted notes ordered by pinned then updated_at.
func (s *Store) List(includeArchived bool) ([]Note, error) {
	query := `
		SELECT id, title, content, created_at, updated_at, pinned, archived, deleted_at
		FROM notes
		WHERE deleted_at IS NULL`
	if !includeArchived {
		query += ` AND archived = 0`
	}
	query += ` ORDER BY pinned DESC, updated_at DESC`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query notes: %w", err)
	}
	defer rows.Close()

	var notes []Note
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, *note)
	}
	return notes, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanNote(row scanner) (*Note, error) {
	var note Note
	var createdAt, updatedAt string
	var deletedAt sql.NullString
	var pinned, archived int

	err := row.Scan(&note.ID, &note.Title, &note.Content,
		&createdAt, &updatedAt, &pinned, &archived, &deletedAt)
	if err != nil {
		return nil, err
	}

	note.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	note.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
	note.Pinned = pinned == 1
	note.Archived = archived == 1
	if deletedAt.Valid {
		t, _ := time.Parse(time.RFC3339Nano, deletedAt.String)
		note.DeletedAt = &t
	}
	return &note, nil
}

// live returns the note or ErrNotFound if it is missing or deleted.
func (s *Store) live(id string) (*Note, error) {
	note, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if note == nil || note.DeletedAt != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return note, nil
}

// TogglePin flips the pinned state and returns the new value.
func (s *Store) TogglePin(id string) (bool, error) {
	note, err := s.live(id)
	if err != nil {
		return false, err
	}
	note.Pinned = !note.Pinned
	return note.Pinned, s.Update(note)
}

// ToggleArchive flips the archived state and returns the new value.
func (s *Store) ToggleArchive(id string) (bool, error) {
	note, err := s.live(id)
	if err != nil {
		return false, err
	}
	note.Archived = !note.Archived
	return note.Archived, s.Update(note)
}

// UpdateContent replaces a note's content and retitles it from the first line.
func (s *Store) UpdateContent(id, content string) error {
	note, err := s.live(id)
	if err != nil {
		return err
	}
	note.Title = titleFromContent(content)
	note.Content = content
	return s.Update(note)
}

// NotePath writes the note content to a temp file for an external editor and
// returns its path.
func (s *Store) NotePath(id string) (string, error) {
	note, err := s.live(id)
	if err != nil {
		return "", err
	}
	path := filepath.Join(os.TempDir(), "cardview-note-"+id+".md")
	if err := os.WriteFile(path, []byte(note.Content), 0644); err != nil {
		return "", fmt.Errorf("write temp note: %w", err)
	}
	return path, nil
}

func titleFromContent(content string) string {
	first, _, _ := strings.Cut(content, "\n")
	first = strings.TrimSpace(strings.TrimLeft(first, "# "))
	if first == "" {
		return "Untitled"
	}
	return first
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
