package store

import (
	"errors"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

// DBStore is the gorm-backed Store used in production.
type DBStore struct {
	db *gorm.DB
}

func NewDBStore(db *gorm.DB) *DBStore {
	return &DBStore{db: db}
}

var _ Store = (*DBStore)(nil)

func (s *DBStore) CreatePost(post *models.Post, creatorID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		return tx.Create(&models.UserPost{UserID: creatorID, PostID: post.ID}).Error
	})
}

func (s *DBStore) PostByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := s.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (s *DBStore) PostsByAuthor(userID uint) ([]models.Post, error) {
	posts := make([]models.Post, 0)
	err := s.db.
		Joins("JOIN user_posts ON user_posts.post_id = posts.id").
		Where("user_posts.user_id = ?", userID).
		Find(&posts).Error
	return posts, err
}

func (s *DBStore) AuthorIDs(postID uint) ([]uint, error) {
	ids := make([]uint, 0)
	err := s.db.Model(&models.UserPost{}).
		Where("post_id = ?", postID).
		Order("user_id ASC").
		Pluck("user_id", &ids).Error
	return ids, err
}

func (s *DBStore) IsAuthor(userID, postID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.UserPost{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	return count > 0, err
}

func (s *DBStore) ApplyPostPatch(post *models.Post, addAuthorIDs, removeAuthorIDs []uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(post).Error; err != nil {
			return err
		}
		if len(removeAuthorIDs) > 0 {
			err := tx.Where("post_id = ? AND user_id IN ?", post.ID, removeAuthorIDs).
				Delete(&models.UserPost{}).Error
			if err != nil {
				return err
			}
		}
		for _, userID := range addAuthorIDs {
			row := models.UserPost{UserID: userID, PostID: post.ID}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *DBStore) SetPopularity(postID uint, popularity float64) error {
	if popularity < 0.0 || popularity > 1.0 {
		return models.ErrPopularityBound
	}
	res := s.db.Model(&models.Post{}).
		Where("id = ?", postID).
		UpdateColumn("popularity", popularity)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *DBStore) IncrementLikes(postID uint) (int, error) {
	return s.incrementCounter(postID, "likes")
}

func (s *DBStore) IncrementReads(postID uint) (int, error) {
	return s.incrementCounter(postID, "reads")
}

func (s *DBStore) incrementCounter(postID uint, column string) (int, error) {
	var value int
	err := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Post{}).
			Where("id = ?", postID).
			UpdateColumn(column, gorm.Expr(column+" + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Model(&models.Post{}).
			Where("id = ?", postID).
			Select(column).
			Scan(&value).Error
	})
	return value, err
}

func (s *DBStore) CreateUser(user *models.User) error {
	if err := s.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (s *DBStore) UserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *DBStore) UserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *DBStore) UserExists(id uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.User{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
