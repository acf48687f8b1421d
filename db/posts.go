package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SteveHaveIt/Blog/model"
)

const postColumns = `id, type, COALESCE(title, '') as title, content,
	COALESCE(media_url, '') as media_url,
	COALESCE(author, '') as author,
	COALESCE(tags, '') as tags,
	COALESCE(slug, '') as slug,
	published, created_at, published_at, updated_at`

// rowScanner is an interface that can be satisfied by *sql.Row or *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanPost scans a row into a Post struct.
func scanPost(scanner rowScanner) (*model.Post, error) {
	var (
		post        model.Post
		tagsJSON    string
		publishedAt sql.NullTime
	)
	err := scanner.Scan(
		&post.ID, &post.Type, &post.Title, &post.Content,
		&post.MediaURL, &post.Author, &tagsJSON, &post.Slug,
		&post.Published, &post.CreatedAt, &publishedAt, &post.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if publishedAt.Valid {
		t := publishedAt.Time
		post.PublishedAt = &t
	}
	if tagsJSON != "" {
		if err := json.Unmarshal([]byte(tagsJSON), &post.Tags); err != nil {
			return nil, fmt.Errorf("failed to decode tags for post %s: %w", post.ID, err)
		}
	}

	return &post, nil
}

func encodeTags(tags []string) (string, error) {
	if len(tags) == 0 {
		return "", nil
	}
	raw, err := json.Marshal(tags)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// CreatePost inserts a new post and returns the stored record.
func (s *Store) CreatePost(ctx context.Context, p model.InsertPost) (*model.Post, error) {
	if !p.Type.Valid() {
		return nil, fmt.Errorf("invalid post type: %q", p.Type)
	}

	tagsJSON, err := encodeTags(p.Tags)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	createdAt := p.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	post := &model.Post{
		ID:        uuid.NewString(),
		Type:      p.Type,
		Title:     p.Title,
		Content:   p.Content,
		MediaURL:  p.MediaURL,
		Author:    p.Author,
		Tags:      p.Tags,
		Slug:      p.Slug,
		Published: p.Published,
		CreatedAt: createdAt,
		UpdatedAt: now,
	}

	_, err = s.db.ExecContext(ctx, `INSERT INTO posts(
		id, type, title, content, media_url, author, tags, slug, published, created_at, updated_at
	) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		post.ID, post.Type, post.Title, post.Content, post.MediaURL,
		post.Author, tagsJSON, post.Slug, post.Published, post.CreatedAt, post.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert post: %w", err)
	}

	return post, nil
}

// Posts returns all posts matching the filter, newest first.
func (s *Store) Posts(ctx context.Context, filter model.PostFilter) ([]model.Post, error) {
	query := "SELECT " + postColumns + " FROM posts"
	var (
		clauses []string
		args    []interface{}
	)

	if filter.Type != "" {
		clauses = append(clauses, "type = ?")
		args = append(args, filter.Type)
	}
	if filter.Published != nil {
		clauses = append(clauses, "published = ?")
		args = append(args, *filter.Published)
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	posts := []model.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *post)
	}

	return posts, rows.Err()
}

// PostByID retrieves a single post by its ID.
func (s *Store) PostByID(ctx context.Context, id string) (*model.Post, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+postColumns+" FROM posts WHERE id = ?", id)
	return scanPost(row)
}

// UpdatePost applies a partial update and returns the updated record.
func (s *Store) UpdatePost(ctx context.Context, id string, updates model.UpdatePost) (*model.Post, error) {
	sets := []string{"updated_at = ?"}
	args := []interface{}{time.Now().UTC()}

	if updates.Type != nil {
		if !updates.Type.Valid() {
			return nil, fmt.Errorf("invalid post type: %q", *updates.Type)
		}
		sets = append(sets, "type = ?")
		args = append(args, *updates.Type)
	}
	if updates.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *updates.Title)
	}
	if updates.Content != nil {
		sets = append(sets, "content = ?")
		args = append(args, *updates.Content)
	}
	if updates.MediaURL != nil {
		sets = append(sets, "media_url = ?")
		args = append(args, *updates.MediaURL)
	}
	if updates.Author != nil {
		sets = append(sets, "author = ?")
		args = append(args, *updates.Author)
	}
	if updates.Tags != nil {
		tagsJSON, err := encodeTags(updates.Tags)
		if err != nil {
			return nil, err
		}
		sets = append(sets, "tags = ?")
		args = append(args, tagsJSON)
	}

	args = append(args, id)
	res, err := s.db.ExecContext(ctx,
		"UPDATE posts SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrNotFound
	}

	return s.PostByID(ctx, id)
}

// PublishPost marks a post as published and stamps published_at.
func (s *Store) PublishPost(ctx context.Context, id string) (*model.Post, error) {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		"UPDATE posts SET published = 1, published_at = ?, updated_at = ? WHERE id = ?",
		now, now, id)
	if err != nil {
		return nil, fmt.Errorf("failed to publish post: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrNotFound
	}

	return s.PostByID(ctx, id)
}

// DeletePost removes a post. Deleting a missing post is not an error.
func (s *Store) DeletePost(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM posts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	return nil
}

// RecentPosts returns the most recently created posts, newest first.
// The submission flow uses it as a bounded duplicate-title lookback.
func (s *Store) RecentPosts(ctx context.Context, limit int) ([]model.Post, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+postColumns+" FROM posts ORDER BY created_at DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent posts: %w", err)
	}
	defer rows.Close()

	posts := []model.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *post)
	}

	return posts, rows.Err()
}
