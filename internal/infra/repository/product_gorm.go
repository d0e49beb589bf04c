package repository

import (
	"context"
	"errors"

	"nakhlestan/internal/domain/model"
	repo "nakhlestan/internal/repository"

	"gorm.io/gorm"
)

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

// فهرست عمومی؛ فقط محصولات فعال
func (r *ProductGormRepository) ListPublic(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 || q.Limit > 100 {
		q.Limit = 20
	}

	base := r.db.WithContext(ctx).Model(&model.Product{}).Where("is_active = ?", true)

	if q.Q != "" {
		base = base.Where("name LIKE ?", "%"+q.Q+"%")
	}
	if q.Category != "" {
		base = base.Where("category = ?", q.Category)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return []model.Product{}, 0, err
	}

	switch q.Sort {
	case "price_asc":
		base = base.Order("price asc")
	case "price_desc":
		base = base.Order("price desc")
	default:
		base = base.Order("id desc")
	}

	var items []model.Product
	offset := (q.Page - 1) * q.Limit
	if err := base.Limit(q.Limit).Offset(offset).Find(&items).Error; err != nil {
		return []model.Product{}, 0, err
	}

	return items, total, nil
}

func (r *ProductGormRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// کم کردن موجودی به شرط کافی بودن؛ اگر به صفر ردیف خورد یعنی موجودی نبود.
func (r *ProductGormRepository) DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ? AND stock >= ?", productID, qty).
		UpdateColumn("stock", gorm.Expr("stock - ?", qty))

	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
