package repositories

import (
	"context"

	"gorm.io/gorm"
)

// Store aggregates the per-entity repositories behind one seam so that
// services (and tests) depend on a single interface, and so that a
// transaction can rebind every repository to the same unit of work.
type Store interface {
	Users() UserRepository
	Posts() PostRepository
	Comments() CommentRepository
	Likes() LikeRepository
	Follows() FollowRepository
	Videos() VideoRepository

	// Transaction runs fn inside a single database transaction. The Store
	// passed to fn is bound to that transaction; all writes commit or roll
	// back together. Returning an error (or panicking) rolls back.
	Transaction(ctx context.Context, fn func(Store) error) error
}

// PostgresStore implements Store on top of GORM/PostgreSQL
type PostgresStore struct {
	db       *gorm.DB
	users    UserRepository
	posts    PostRepository
	comments CommentRepository
	likes    LikeRepository
	follows  FollowRepository
	videos   VideoRepository
}

// NewPostgresStore creates a PostgresStore and its repositories
func NewPostgresStore(db *gorm.DB) *PostgresStore {
	return &PostgresStore{
		db:       db,
		users:    NewPostgresUserRepository(db),
		posts:    NewPostgresPostRepository(db),
		comments: NewPostgresCommentRepository(db),
		likes:    NewPostgresLikeRepository(db),
		follows:  NewPostgresFollowRepository(db),
		videos:   NewPostgresVideoRepository(db),
	}
}

func (s *PostgresStore) Users() UserRepository       { return s.users }
func (s *PostgresStore) Posts() PostRepository       { return s.posts }
func (s *PostgresStore) Comments() CommentRepository { return s.comments }
func (s *PostgresStore) Likes() LikeRepository       { return s.likes }
func (s *PostgresStore) Follows() FollowRepository   { return s.follows }
func (s *PostgresStore) Videos() VideoRepository     { return s.videos }

func (s *PostgresStore) Transaction(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewPostgresStore(tx))
	})
}
