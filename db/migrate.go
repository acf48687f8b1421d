package db

import "fmt"

// createTables creates the necessary tables in the database if they don't exist.
func (s *Store) createTables() error {
	// SQL statement to create the 'posts' table.
	createPostsTableSQL := `
	CREATE TABLE IF NOT EXISTS posts (
		id TEXT PRIMARY KEY,
		type TEXT NOT NULL CHECK (type IN ('blog', 'vlog', 'story')),
		title TEXT,
		content TEXT NOT NULL,
		media_url TEXT,
		author TEXT,
		tags TEXT,
		slug TEXT,
		published INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL,
		published_at TIMESTAMP,
		updated_at TIMESTAMP NOT NULL
	);`

	if _, err := s.db.Exec(createPostsTableSQL); err != nil {
		return fmt.Errorf("failed to create posts table: %w", err)
	}

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_posts_type ON posts(type)",
		"CREATE INDEX IF NOT EXISTS idx_posts_published ON posts(published)",
		"CREATE INDEX IF NOT EXISTS idx_posts_created_at ON posts(created_at DESC)",
	}
	for _, stmt := range indexes {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}
