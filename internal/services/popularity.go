package services

import (
	"log"
	"sync"
	"time"

	"inkwell/internal/store"
)

// PopularityService recomputes post popularity from the like/read
// counters asynchronously, so metric bumps never block on the extra
// read-modify-write.
type PopularityService struct {
	store   store.Store
	queue   chan uint
	pending map[uint]bool
	mu      sync.Mutex
}

// NewPopularityService starts the background worker.
func NewPopularityService(st store.Store) *PopularityService {
	s := &PopularityService{
		store:   st,
		queue:   make(chan uint, 1000),
		pending: make(map[uint]bool),
	}
	go s.worker()
	return s
}

// ScheduleUpdate queues a post for recompute. Posts already queued are
// skipped so a burst of likes collapses into one write.
func (s *PopularityService) ScheduleUpdate(postID uint) {
	s.mu.Lock()
	if s.pending[postID] {
		s.mu.Unlock()
		return
	}
	s.pending[postID] = true
	s.mu.Unlock()

	select {
	case s.queue <- postID:
	default:
		s.mu.Lock()
		delete(s.pending, postID)
		s.mu.Unlock()
		log.Printf("popularity queue full, skipping post %d", postID)
	}
}

func (s *PopularityService) worker() {
	batch := make([]uint, 0, 50)
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case postID := <-s.queue:
			batch = append(batch, postID)
			if len(batch) >= 50 {
				s.processBatch(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				s.processBatch(batch)
				batch = batch[:0]
			}
		}
	}
}

func (s *PopularityService) processBatch(postIDs []uint) {
	for _, postID := range postIDs {
		s.updatePopularity(postID)

		s.mu.Lock()
		delete(s.pending, postID)
		s.mu.Unlock()
	}
}

func (s *PopularityService) updatePopularity(postID uint) {
	post, err := s.store.PostByID(postID)
	if err != nil {
		log.Printf("popularity update skipped, post %d: %v", postID, err)
		return
	}
	if err := s.store.SetPopularity(postID, Popularity(post.Likes, post.Reads)); err != nil {
		log.Printf("failed to update popularity of post %d: %v", postID, err)
	}
}

// Popularity maps raw engagement counts into [0, 1). Likes weigh double
// reads; the half-way point sits at an engagement of 100.
func Popularity(likes, reads int) float64 {
	engagement := float64(likes*2 + reads)
	return engagement / (engagement + 100.0)
}
