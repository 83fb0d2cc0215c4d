package repository

import (
	"context"

	"github.com/studentbay/backend/internal/model"
	"gorm.io/gorm"
)

// SearchQuery is the refined search over live listings.
type SearchQuery struct {
	Keyword    string
	Categories []string
	Conditions []string
	MinPrice   *float64
	MaxPrice   *float64
	SortBy     string
	Offset     int
	Limit      int
}

// ListQuery is the plain browse filter.
type ListQuery struct {
	Category string
	Status   string
	SellerID string
	Offset   int
	Limit    int
}

type ItemRepository interface {
	Create(ctx context.Context, item *model.Item) error
	FindByID(ctx context.Context, id string) (*model.Item, error)
	Search(ctx context.Context, q SearchQuery) ([]*model.Item, int64, error)
	List(ctx context.Context, q ListQuery) ([]*model.Item, error)
	Featured(ctx context.Context, limit int) ([]*model.Item, error)
	Update(ctx context.Context, id string, updates map[string]any) error
	IncrementViewCount(ctx context.Context, id string) error
}

type itemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Create(ctx context.Context, item *model.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *itemRepository) FindByID(ctx context.Context, id string) (*model.Item, error) {
	var item model.Item
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepository) Search(ctx context.Context, q SearchQuery) ([]*model.Item, int64, error) {
	base := r.db.WithContext(ctx).Model(&model.Item{}).
		Where("status != ?", model.StatusDeleted)

	if q.Keyword != "" {
		pattern := "%" + q.Keyword + "%"
		base = base.Where("title LIKE ? OR description LIKE ?", pattern, pattern)
	}
	if len(q.Categories) > 0 {
		base = base.Where("category IN ?", q.Categories)
	}
	if len(q.Conditions) > 0 {
		base = base.Where("condition IN ?", q.Conditions)
	}
	if q.MinPrice != nil {
		base = base.Where("price >= ?", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		base = base.Where("price <= ?", *q.MaxPrice)
	}

	// Total from the same filter set, without pagination.
	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := map[string]string{
		"newest":     "post_date DESC",
		"price_asc":  "price ASC",
		"price_desc": "price DESC",
		"views":      "view_count DESC",
	}[q.SortBy]
	if order == "" {
		order = "post_date DESC"
	}

	var items []*model.Item
	if err := base.Order(order).Offset(q.Offset).Limit(q.Limit).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *itemRepository) List(ctx context.Context, q ListQuery) ([]*model.Item, error) {
	query := r.db.WithContext(ctx).Model(&model.Item{})

	if q.Category != "" {
		query = query.Where("category = ?", q.Category)
	}
	// Soft-deleted rows only show up when asked for explicitly.
	if q.Status != "" {
		query = query.Where("status = ?", q.Status)
	} else {
		query = query.Where("status != ?", model.StatusDeleted)
	}
	if q.SellerID != "" {
		query = query.Where("seller_id = ?", q.SellerID)
	}

	var items []*model.Item
	if err := query.Order("post_date DESC").Offset(q.Offset).Limit(q.Limit).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *itemRepository) Featured(ctx context.Context, limit int) ([]*model.Item, error) {
	var items []*model.Item
	if err := r.db.WithContext(ctx).
		Where("status = ?", model.StatusAvailable).
		Order("view_count DESC").Order("post_date DESC").
		Limit(limit).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *itemRepository) Update(ctx context.Context, id string, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&model.Item{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// IncrementViewCount bumps the counter in the store so concurrent
// increments cannot lose updates.
func (r *itemRepository) IncrementViewCount(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&model.Item{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).Error
}
