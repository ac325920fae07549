package services

import (
	"sort"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/store"
	"inkwell/internal/utils"
)

// Sort options accepted by FindAndSort.
const (
	SortByID         = "id"
	SortByReads      = "reads"
	SortByLikes      = "likes"
	SortByPopularity = "popularity"

	DirectionAsc  = "asc"
	DirectionDesc = "desc"
)

// PostPatch carries the optional fields of a partial update. A nil
// field means "leave unchanged", never "clear".
type PostPatch struct {
	AuthorIDs *[]int64
	Tags      *[]string
	Text      *string
}

// PostService implements post creation, the author-union query and the
// partial-update reconciler on top of an injected store.
type PostService struct {
	store      store.Store
	popularity *PopularityService
}

func NewPostService(st store.Store, popularity *PopularityService) *PostService {
	return &PostService{store: st, popularity: popularity}
}

// Create stores a new post with the creator as its sole author.
func (s *PostService) Create(text string, tags []string, creatorID uint) (*models.Post, error) {
	if text == "" {
		return nil, invalid("text", "Must provide text for the new post")
	}
	for _, tag := range tags {
		if err := checkTag(tag); err != nil {
			return nil, err
		}
	}
	post := &models.Post{
		Text: text,
		Tags: models.TagList(tags),
	}
	if post.Tags == nil {
		post.Tags = models.TagList{}
	}
	if err := s.store.CreatePost(post, creatorID); err != nil {
		return nil, err
	}
	post.AuthorIDs = []uint{creatorID}
	return post, nil
}

// Get returns a post with its author ids sorted ascending.
func (s *PostService) Get(id uint) (*models.Post, error) {
	post, err := s.store.PostByID(id)
	if err != nil {
		return nil, err
	}
	authorIDs, err := s.store.AuthorIDs(id)
	if err != nil {
		return nil, err
	}
	post.AuthorIDs = authorIDs
	return post, nil
}

// FindAndSort returns the union of the requested authors' posts ordered
// by sortBy/direction. A post with several requested authors appears
// once; posts are coalesced by id, not by record equality, so an
// in-flight mutation between per-author fetches cannot produce
// spurious duplicates. Ties on the primary key are always broken by id
// ascending regardless of direction, which makes the order total and
// reproducible. Zero matches is a valid outcome and yields an empty
// slice.
func (s *PostService) FindAndSort(authorIDs, sortBy, direction string) ([]models.Post, error) {
	if authorIDs == "" {
		return nil, invalid("authorIds", "Must provide at least one authorId to search for.")
	}
	ids, err := utils.ParseIDList(authorIDs)
	if err != nil {
		return nil, invalid("authorIds", "All ids passed must be a positive integer. Integers must be separated by a comma. [,]")
	}

	if sortBy == "" {
		sortBy = SortByID
	}
	switch sortBy {
	case SortByID, SortByReads, SortByLikes, SortByPopularity:
	default:
		return nil, invalid("sortBy", `Invalid sortBy passed. Must be one of ["id","reads","likes","popularity"]`)
	}

	if direction == "" {
		direction = DirectionAsc
	}
	if direction != DirectionAsc && direction != DirectionDesc {
		return nil, invalid("direction", `Invalid sort order specified. Must be one of ["asc","desc"]`)
	}

	seen := make(map[uint]bool)
	posts := make([]models.Post, 0)
	for _, id := range ids {
		authored, err := s.store.PostsByAuthor(id)
		if err != nil {
			return nil, err
		}
		for _, post := range authored {
			if !seen[post.ID] {
				seen[post.ID] = true
				posts = append(posts, post)
			}
		}
	}

	sortPosts(posts, sortBy, direction)
	return posts, nil
}

func sortPosts(posts []models.Post, sortBy, direction string) {
	sort.Slice(posts, func(i, j int) bool {
		a, b := posts[i], posts[j]
		var less, equal bool
		switch sortBy {
		case SortByReads:
			less, equal = a.Reads < b.Reads, a.Reads == b.Reads
		case SortByLikes:
			less, equal = a.Likes < b.Likes, a.Likes == b.Likes
		case SortByPopularity:
			less, equal = a.Popularity < b.Popularity, a.Popularity == b.Popularity
		default:
			less, equal = a.ID < b.ID, a.ID == b.ID
		}
		if equal {
			return a.ID < b.ID
		}
		if direction == DirectionDesc {
			return !less
		}
		return less
	})
}

// ApplyPatch validates every present field before mutating anything,
// then applies the whole patch in one store transaction and returns the
// post reloaded fresh from the store. The author list is reconciled by
// set difference: rows for authors kept across the patch are never
// deleted and recreated. Concurrent patches to the same post are
// last-committed-write-wins; there is no version token.
func (s *PostService) ApplyPatch(postID, userID uint, patch PostPatch) (*models.Post, error) {
	post, err := s.store.PostByID(postID)
	if err != nil {
		return nil, err
	}
	author, err := s.store.IsAuthor(userID, postID)
	if err != nil {
		return nil, err
	}
	if !author {
		return nil, ErrForbidden
	}

	var addAuthorIDs, removeAuthorIDs []uint
	if patch.AuthorIDs != nil {
		requested := *patch.AuthorIDs
		if len(requested) == 0 {
			return nil, invalid("authorIds", "Cannot set authorIds to an empty list.")
		}
		wanted := make(map[uint]bool, len(requested))
		for _, id := range requested {
			if id <= 0 {
				return nil, invalid("authorIds", "Author with id %d does not exist.", id)
			}
			exists, err := s.store.UserExists(uint(id))
			if err != nil {
				return nil, err
			}
			if !exists {
				return nil, invalid("authorIds", "Author with id %d does not exist.", id)
			}
			wanted[uint(id)] = true
		}

		current, err := s.store.AuthorIDs(postID)
		if err != nil {
			return nil, err
		}
		existing := make(map[uint]bool, len(current))
		for _, id := range current {
			existing[id] = true
			if !wanted[id] {
				removeAuthorIDs = append(removeAuthorIDs, id)
			}
		}
		for id := range wanted {
			if !existing[id] {
				addAuthorIDs = append(addAuthorIDs, id)
			}
		}
	}

	if patch.Tags != nil {
		tags := *patch.Tags
		if len(tags) == 0 {
			return nil, invalid("tags", "Cannot apply an empty set of tags.")
		}
		for _, tag := range tags {
			if err := checkTag(tag); err != nil {
				return nil, err
			}
		}
		post.Tags = models.TagList(tags)
	}

	if patch.Text != nil {
		if *patch.Text == "" {
			return nil, invalid("text", "Text cannot be empty.")
		}
		post.Text = *patch.Text
	}

	if err := s.store.ApplyPostPatch(post, addAuthorIDs, removeAuthorIDs); err != nil {
		return nil, err
	}

	// Reload fresh from the store to guard against stale in-memory state.
	return s.Get(postID)
}

// Like bumps the like counter and schedules a popularity recompute.
func (s *PostService) Like(postID uint) (int, error) {
	likes, err := s.store.IncrementLikes(postID)
	if err != nil {
		return 0, err
	}
	if s.popularity != nil {
		s.popularity.ScheduleUpdate(postID)
	}
	return likes, nil
}

// MarkRead bumps the read counter and schedules a popularity recompute.
func (s *PostService) MarkRead(postID uint) (int, error) {
	reads, err := s.store.IncrementReads(postID)
	if err != nil {
		return 0, err
	}
	if s.popularity != nil {
		s.popularity.ScheduleUpdate(postID)
	}
	return reads, nil
}

func checkTag(tag string) *ValidationError {
	if tag == "" {
		return invalid("tags", "Tags cannot be empty strings.")
	}
	if strings.Contains(tag, ",") {
		return invalid("tags", "Tags cannot contain commas.")
	}
	return nil
}
