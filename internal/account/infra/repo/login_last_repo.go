package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"MedievalKingdoms/internal/account/domain"
)

type LoginLastRepo struct {
	db *gorm.DB
}

func NewLoginLastRepo(db *gorm.DB) *LoginLastRepo {
	return &LoginLastRepo{db: db}
}

func (r *LoginLastRepo) GetLoginLast(ctx context.Context, uid int64) (domain.LoginLast, error) {
	var ll domain.LoginLast
	err := r.db.WithContext(ctx).Where("uid = ?", uid).First(&ll).Error
	if err == nil {
		return ll, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// 技术错误 → 业务错误
		return domain.LoginLast{}, domain.ErrLastLoginNotFound.WithData("uid", uid)
	}
	return domain.LoginLast{}, domain.ErrSystemUnavailable.WithData("uid", uid).WithCause(err)
}

// Save 借助主键实现 upsert：Id==0 插入，否则按主键更新。
func (r *LoginLastRepo) Save(ctx context.Context, ll domain.LoginLast) error {
	if err := r.db.WithContext(ctx).Save(&ll).Error; err != nil {
		return domain.ErrSystemUnavailable.WithData("uid", ll.UId).WithCause(err)
	}
	return nil
}
