package model

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrInvalidTransition 状态机中不存在的迁移
var ErrInvalidTransition = errors.New("invalid status transition")

// newID 为空主键生成 uuid
func newID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}

func (u *User) BeforeCreate(*gorm.DB) error {
	newID(&u.ID)
	return nil
}

func (i *Idea) BeforeCreate(*gorm.DB) error {
	newID(&i.ID)
	return nil
}

func (a *AIArtifact) BeforeCreate(*gorm.DB) error {
	newID(&a.ID)
	return nil
}

func (p *Post) BeforeCreate(*gorm.DB) error {
	newID(&p.ID)
	return nil
}

func (m *Media) BeforeCreate(*gorm.DB) error {
	newID(&m.ID)
	return nil
}

func (l *Lead) BeforeCreate(*gorm.DB) error {
	newID(&l.ID)
	return nil
}
