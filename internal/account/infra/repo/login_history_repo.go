package repo

import (
	"context"

	"gorm.io/gorm"

	"MedievalKingdoms/internal/account/domain"
)

type LoginHistoryRepo struct {
	db *gorm.DB
}

func NewLoginHistoryRepo(db *gorm.DB) *LoginHistoryRepo {
	return &LoginHistoryRepo{db: db}
}

func (r *LoginHistoryRepo) Save(ctx context.Context, history domain.LoginHistory) error {
	if err := r.db.WithContext(ctx).Create(&history).Error; err != nil {
		return domain.ErrSystemUnavailable.WithData("uid", history.UId).WithCause(err)
	}
	return nil
}
