package dao

import (
	"Margin/pkg/database"
	"context"
	"errors"

	"gorm.io/gorm"
)

// Repo 通用的单表操作，具体 DAO 以值的形式嵌入
type Repo[T any] struct {
	Db *gorm.DB
}

func NewRepo[T any](db *gorm.DB) Repo[T] {
	return Repo[T]{Db: db}
}

// Conn 优先使用 ctx 中的事务
func (r *Repo[T]) Conn(ctx context.Context) *gorm.DB {
	return database.Conn(ctx, r.Db)
}

// Model 以 T 为 Model 的查询
func (r *Repo[T]) Model(ctx context.Context) *gorm.DB {
	return r.Conn(ctx).Model(new(T))
}

func (r *Repo[T]) Create(ctx context.Context, data *T) error {
	return r.Conn(ctx).Create(data).Error
}

func (r *Repo[T]) Save(ctx context.Context, data *T) error {
	return r.Conn(ctx).Save(data).Error
}

// FindByID 不存在时返回 gorm.ErrRecordNotFound
func (r *Repo[T]) FindByID(ctx context.Context, id any) (*T, error) {
	var item T
	if err := r.Conn(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// FindByWhere 不存在时返回 gorm.ErrRecordNotFound
func (r *Repo[T]) FindByWhere(ctx context.Context, where string, args ...any) (*T, error) {
	var item T
	if err := r.Conn(ctx).Where(where, args...).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// FindOneOrNil 不存在时返回 nil, nil
func (r *Repo[T]) FindOneOrNil(ctx context.Context, where string, args ...any) (*T, error) {
	item, err := r.FindByWhere(ctx, where, args...)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return item, err
}

func (r *Repo[T]) FindAll(ctx context.Context, where string, args ...any) ([]*T, error) {
	items := make([]*T, 0)
	err := r.Conn(ctx).Where(where, args...).Find(&items).Error
	return items, err
}

func (r *Repo[T]) IsExist(ctx context.Context, where string, args ...any) (bool, error) {
	var count int64
	if err := r.Model(ctx).Where(where, args...).Limit(1).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Repo[T]) Count(ctx context.Context, where string, args ...any) (int64, error) {
	var count int64
	err := r.Model(ctx).Where(where, args...).Count(&count).Error
	return count, err
}

// DeleteWhere 批量删除，返回影响行数
func (r *Repo[T]) DeleteWhere(ctx context.Context, where string, args ...any) (int64, error) {
	result := r.Conn(ctx).Where(where, args...).Delete(new(T))
	return result.RowsAffected, result.Error
}
