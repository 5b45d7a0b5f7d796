package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// News categories
const (
	NewsCategoryNotice = "NOTICE"
	NewsCategoryEvent  = "EVENT"
)

// StringList is a []string persisted as a JSON array in a text column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*l = StringList{}
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type %T for StringList", value)
	}
}

func (StringList) GormDataType() string { return "text" }

// Behavior reports
type Post struct {
	ID        string     `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time  `gorm:"index" json:"createdAt"`
	Age       int        `gorm:"not null" json:"age"`
	Gender    string     `gorm:"size:32;not null" json:"gender"`
	Places    StringList `gorm:"type:text" json:"places"`
	Actions   StringList `gorm:"type:text" json:"actions"`
	Solution  string     `gorm:"type:text;not null" json:"solution"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// Admin announcements shown on the homepage
type NewsPost struct {
	ID        string     `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time  `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	Category  string     `gorm:"size:16;not null" json:"category"`
	Title     string     `gorm:"size:160;not null" json:"title"`
	Content   string     `gorm:"type:text;not null" json:"content"`
	EventDate *time.Time `json:"eventDate"`
}

func (n *NewsPost) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}

// Members chat; messages are append-only and ordered by CreatedAt.
type ChatMessage struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt   time.Time `gorm:"index" json:"createdAt"`
	DisplayName string    `gorm:"size:128;not null" json:"displayName"`
	Message     string    `gorm:"type:text;not null" json:"message"`
}

func (m *ChatMessage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
