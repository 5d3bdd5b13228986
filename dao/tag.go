package dao

import (
	"Margin/models"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TagDAO struct {
	Repo[models.Tag]
}

func NewTagDAO(db *gorm.DB) *TagDAO {
	return &TagDAO{Repo: NewRepo[models.Tag](db)}
}

// FindByName 精确查询，不存在返回 nil
func (d *TagDAO) FindByName(ctx context.Context, name string) (*models.Tag, error) {
	return d.FindOneOrNil(ctx, "name = ?", name)
}

// FindByNames 批量查询，返回 name -> Tag
func (d *TagDAO) FindByNames(ctx context.Context, names []string) (map[string]*models.Tag, error) {
	result := make(map[string]*models.Tag, len(names))
	if len(names) == 0 {
		return result, nil
	}

	tags, err := d.FindAll(ctx, "name IN ?", names)
	if err != nil {
		return nil, err
	}
	for _, tag := range tags {
		result[tag.Name] = tag
	}
	return result, nil
}

// FindOrCreate 不存在的标签批量插入，并发冲突时忽略，最后统一回查
func (d *TagDAO) FindOrCreate(ctx context.Context, names []string) (map[string]*models.Tag, error) {
	existing, err := d.FindByNames(ctx, names)
	if err != nil {
		return nil, err
	}

	toCreate := make([]*models.Tag, 0, len(names))
	for _, name := range names {
		if _, ok := existing[name]; !ok {
			toCreate = append(toCreate, &models.Tag{Name: name})
		}
	}
	if len(toCreate) == 0 {
		return existing, nil
	}

	err = d.Conn(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).CreateInBatches(toCreate, 100).Error
	if err != nil {
		return nil, err
	}

	return d.FindByNames(ctx, names)
}
