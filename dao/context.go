package dao

import (
	"Margin/models"

	"gorm.io/gorm"
)

type ContextDAO struct {
	Repo[models.Context]
}

func NewContextDAO(db *gorm.DB) *ContextDAO {
	return &ContextDAO{Repo: NewRepo[models.Context](db)}
}
