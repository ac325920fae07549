// Package store owns persistence for posts, users and the authorship
// join. Consumers hold the Store interface so tests can swap in the
// in-memory implementation.
package store

import (
	"errors"

	"inkwell/internal/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

type Store interface {
	// CreatePost inserts the post and its initial authorship row for
	// creatorID in one transaction.
	CreatePost(post *models.Post, creatorID uint) error
	PostByID(id uint) (*models.Post, error)
	// PostsByAuthor returns every post the user authors; an empty slice
	// when there are none.
	PostsByAuthor(userID uint) ([]models.Post, error)
	// AuthorIDs returns the author ids of a post sorted ascending.
	AuthorIDs(postID uint) ([]uint, error)
	IsAuthor(userID, postID uint) (bool, error)
	// ApplyPostPatch persists the post's current field values and the
	// authorship additions/removals atomically. Rows for authors present
	// both before and after are left untouched.
	ApplyPostPatch(post *models.Post, addAuthorIDs, removeAuthorIDs []uint) error
	SetPopularity(postID uint, popularity float64) error
	IncrementLikes(postID uint) (int, error)
	IncrementReads(postID uint) (int, error)

	CreateUser(user *models.User) error
	UserByID(id uint) (*models.User, error)
	UserByEmail(email string) (*models.User, error)
	UserExists(id uint) (bool, error)
}
