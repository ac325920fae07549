package store

import (
	"sort"
	"sync"

	"inkwell/internal/models"
)

// MemStore is an in-memory Store for tests and local experiments. It
// mirrors DBStore's semantics, including rejection of duplicate
// authorship rows and the popularity bound.
type MemStore struct {
	mu     sync.Mutex
	nextID uint
	posts  map[uint]models.Post
	users  map[uint]models.User

	rows    []authorship
	nextSeq int64
}

type authorship struct {
	userID uint
	postID uint
	seq    int64 // insertion stamp, never reused
}

func NewMemStore() *MemStore {
	return &MemStore{
		nextID: 1,
		posts:  make(map[uint]models.Post),
		users:  make(map[uint]models.User),
	}
}

var _ Store = (*MemStore)(nil)

func (s *MemStore) CreatePost(post *models.Post, creatorID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := checkPopularity(post.Popularity); err != nil {
		return err
	}
	post.ID = s.nextID
	s.nextID++
	if post.Tags == nil {
		post.Tags = models.TagList{}
	}
	s.posts[post.ID] = *post
	s.addRow(creatorID, post.ID)
	return nil
}

func (s *MemStore) PostByID(id uint) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	post, ok := s.posts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &post, nil
}

func (s *MemStore) PostsByAuthor(userID uint) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	posts := make([]models.Post, 0)
	for _, row := range s.rows {
		if row.userID == userID {
			posts = append(posts, s.posts[row.postID])
		}
	}
	return posts, nil
}

func (s *MemStore) AuthorIDs(postID uint) ([]uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]uint, 0)
	for _, row := range s.rows {
		if row.postID == postID {
			ids = append(ids, row.userID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (s *MemStore) IsAuthor(userID, postID uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasRow(userID, postID), nil
}

func (s *MemStore) ApplyPostPatch(post *models.Post, addAuthorIDs, removeAuthorIDs []uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[post.ID]; !ok {
		return ErrNotFound
	}
	if err := checkPopularity(post.Popularity); err != nil {
		return err
	}
	for _, userID := range addAuthorIDs {
		if s.hasRow(userID, post.ID) {
			return ErrDuplicate
		}
	}
	s.posts[post.ID] = *post
	for _, userID := range removeAuthorIDs {
		s.removeRow(userID, post.ID)
	}
	for _, userID := range addAuthorIDs {
		s.addRow(userID, post.ID)
	}
	return nil
}

func (s *MemStore) SetPopularity(postID uint, popularity float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := checkPopularity(popularity); err != nil {
		return err
	}
	post, ok := s.posts[postID]
	if !ok {
		return ErrNotFound
	}
	post.Popularity = popularity
	s.posts[postID] = post
	return nil
}

func (s *MemStore) IncrementLikes(postID uint) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	post, ok := s.posts[postID]
	if !ok {
		return 0, ErrNotFound
	}
	post.Likes++
	s.posts[postID] = post
	return post.Likes, nil
}

func (s *MemStore) IncrementReads(postID uint) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	post, ok := s.posts[postID]
	if !ok {
		return 0, ErrNotFound
	}
	post.Reads++
	s.posts[postID] = post
	return post.Reads, nil
}

func (s *MemStore) CreateUser(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return ErrDuplicate
		}
	}
	user.ID = s.nextID
	s.nextID++
	s.users[user.ID] = *user
	return nil
}

func (s *MemStore) UserByID(id uint) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (s *MemStore) UserByEmail(email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemStore) UserExists(id uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.users[id]
	return ok, nil
}

// SeedUser inserts a user under a fixed id, bypassing id assignment.
func (s *MemStore) SeedUser(user models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = user
	if user.ID >= s.nextID {
		s.nextID = user.ID + 1
	}
}

// SeedPost inserts a post under a fixed id with the given authors.
func (s *MemStore) SeedPost(post models.Post, authorIDs ...uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if post.Tags == nil {
		post.Tags = models.TagList{}
	}
	s.posts[post.ID] = post
	if post.ID >= s.nextID {
		s.nextID = post.ID + 1
	}
	for _, userID := range authorIDs {
		s.addRow(userID, post.ID)
	}
}

// AuthorshipStamp reports the insertion stamp of a (user, post) row so
// tests can verify reconciliation leaves surviving rows untouched.
func (s *MemStore) AuthorshipStamp(userID, postID uint) (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range s.rows {
		if row.userID == userID && row.postID == postID {
			return row.seq, true
		}
	}
	return 0, false
}

func (s *MemStore) hasRow(userID, postID uint) bool {
	for _, row := range s.rows {
		if row.userID == userID && row.postID == postID {
			return true
		}
	}
	return false
}

func (s *MemStore) addRow(userID, postID uint) {
	s.nextSeq++
	s.rows = append(s.rows, authorship{userID: userID, postID: postID, seq: s.nextSeq})
}

func (s *MemStore) removeRow(userID, postID uint) {
	for i, row := range s.rows {
		if row.userID == userID && row.postID == postID {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			return
		}
	}
}

func checkPopularity(popularity float64) error {
	if popularity < 0.0 || popularity > 1.0 {
		return models.ErrPopularityBound
	}
	return nil
}
