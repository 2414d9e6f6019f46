package models

import (
	"time"

	"gorm.io/gorm"
)

type CommunityItemKind string

const (
	CommunityKindPost        CommunityItemKind = "post"
	CommunityKindEvent       CommunityItemKind = "event"
	CommunityKindCompetition CommunityItemKind = "competition"
)

// CommunityItem is a post, event or competition shared in the community feed.
type CommunityItem struct {
	ID        uint64            `gorm:"primarykey" json:"id"`
	Kind      CommunityItemKind `gorm:"type:varchar(20);not null;default:'post'" json:"kind"`
	Title     string            `gorm:"type:varchar(255);not null" json:"title"`
	Content   string            `gorm:"type:text" json:"content"`
	OwnerID   uint64            `gorm:"not null;index" json:"owner_id"`
	CreatedAt time.Time         `gorm:"index" json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
	DeletedAt gorm.DeletedAt    `gorm:"index" json:"-"`

	// Relations
	Owner    *User     `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Comments []Comment `gorm:"foreignKey:ItemID" json:"comments,omitempty"`
	Likes    []Like    `gorm:"foreignKey:ItemID" json:"likes,omitempty"`
}

// Comment is a reply on a community item.
type Comment struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	ItemID    uint64         `gorm:"not null;index" json:"item_id"`
	UserID    uint64         `gorm:"not null;index" json:"user_id"`
	Text      string         `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// Like marks that a user liked a community item. Liking twice toggles the
// like off, so the pair is unique.
type Like struct {
	ItemID    uint64    `gorm:"primarykey" json:"item_id"`
	UserID    uint64    `gorm:"primarykey" json:"user_id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// Follow records that FollowerID follows FollowedID.
type Follow struct {
	FollowerID uint64    `gorm:"primarykey" json:"follower_id"`
	FollowedID uint64    `gorm:"primarykey" json:"followed_id"`
	CreatedAt  time.Time `json:"created_at"`
}
