package profile

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *UserProfile) error
	GetByID(ctx context.Context, id string) (*UserProfile, error)
	FindByRole(ctx context.Context, role string, limit, offset int) ([]UserProfile, int64, error)
	Update(ctx context.Context, p *UserProfile) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, p *UserProfile) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) GetByID(ctx context.Context, id string) (*UserProfile, error) {
	var p UserProfile
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) FindByRole(ctx context.Context, role string, limit, offset int) ([]UserProfile, int64, error) {
	var rows []UserProfile
	var total int64

	q := r.db.WithContext(ctx).Model(&UserProfile{}).Where("role = ?", role)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *repository) Update(ctx context.Context, p *UserProfile) error {
	return r.db.WithContext(ctx).Save(p).Error
}
