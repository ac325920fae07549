package models

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// ErrPopularityBound is returned by any write that would push a post's
// popularity outside [0, 1].
var ErrPopularityBound = errors.New("Popularity should be between 0 and 1")

// TagList is an ordered list of tags stored as a single comma-joined
// text column (the original schema predates array columns). The comma is
// a plain separator with no escaping, so a tag containing a comma would
// corrupt the round-trip; validation rejects such tags before they reach
// the store.
type TagList []string

func (t TagList) Value() (driver.Value, error) {
	return strings.Join(t, ","), nil
}

func (t *TagList) Scan(value interface{}) error {
	var s string
	switch v := value.(type) {
	case nil:
		s = ""
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("cannot scan %T into TagList", value)
	}
	if s == "" {
		*t = TagList{}
		return nil
	}
	*t = TagList(strings.Split(s, ","))
	return nil
}

type Post struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Text       string    `gorm:"type:text;not null" json:"text"`
	Likes      int       `gorm:"default:0;not null" json:"likes"`
	Reads      int       `gorm:"default:0;not null" json:"reads"`
	Popularity float64   `gorm:"default:0;not null" json:"popularity"`
	Tags       TagList   `gorm:"type:text;not null" json:"tags"`
	CreatedAt  time.Time `json:"-"`
	UpdatedAt  time.Time `json:"-"`

	// Filled from the user_posts join when serving detail and update
	// responses, always sorted ascending. Not a database column.
	AuthorIDs []uint `gorm:"-" json:"authorIds,omitempty"`
}

// BeforeSave keeps the popularity invariant on every gorm write path.
func (p *Post) BeforeSave(tx *gorm.DB) error {
	if p.Popularity < 0.0 || p.Popularity > 1.0 {
		return ErrPopularityBound
	}
	return nil
}
