package service

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"

	"github.com/studentbay/backend/internal/dto"
	"github.com/studentbay/backend/internal/model"
	"github.com/studentbay/backend/internal/repository"
	"github.com/studentbay/backend/pkg/apperror"
	"github.com/studentbay/backend/pkg/fieldconv"
	"github.com/studentbay/backend/pkg/validation"
	"gorm.io/gorm"
)

const (
	defaultPageSize  = 20
	defaultFeatured  = 8
	maxFeaturedLimit = 50
)

type ItemService interface {
	Search(ctx context.Context, f dto.SearchFilter) ([]dto.ItemResponse, dto.Pagination, error)
	List(ctx context.Context, f dto.ListFilter) ([]dto.ItemResponse, error)
	Featured(ctx context.Context, limit int) ([]dto.ItemResponse, error)
	Detail(ctx context.Context, id string) (*dto.ItemResponse, error)
	Create(ctx context.Context, sellerID string, payload map[string]any) (string, []string, error)
	Update(ctx context.Context, userID, itemID string, payload map[string]any) ([]string, error)
	Delete(ctx context.Context, userID, itemID string) error
	RecordView(ctx context.Context, itemID string) error
	History(ctx context.Context, userID, itemID string) ([]dto.StatusHistoryResponse, error)
}

type itemService struct {
	items   repository.ItemRepository
	users   repository.UserRepository
	ratings repository.RatingRepository
	history repository.StatusHistoryRepository
}

func NewItemService(
	items repository.ItemRepository,
	users repository.UserRepository,
	ratings repository.RatingRepository,
	history repository.StatusHistoryRepository,
) ItemService {
	return &itemService{items: items, users: users, ratings: ratings, history: history}
}

func (s *itemService) Search(ctx context.Context, f dto.SearchFilter) ([]dto.ItemResponse, dto.Pagination, error) {
	page := f.Page
	if page < 1 {
		page = 1
	}
	pageSize := f.PageSize
	if pageSize < 1 {
		pageSize = defaultPageSize
	}

	query := repository.SearchQuery{
		Keyword:    strings.TrimSpace(f.Keyword),
		Categories: splitMulti(f.Category),
		Conditions: splitMulti(f.Condition),
		MinPrice:   f.MinPrice,
		MaxPrice:   f.MaxPrice,
		SortBy:     f.SortBy,
		Offset:     (page - 1) * pageSize,
		Limit:      pageSize,
	}

	items, total, err := s.items.Search(ctx, query)
	if err != nil {
		return nil, dto.Pagination{}, err
	}

	return toItemResponses(items), dto.NewPagination(page, pageSize, total), nil
}

func (s *itemService) List(ctx context.Context, f dto.ListFilter) ([]dto.ItemResponse, error) {
	page := f.Page
	if page < 1 {
		page = 1
	}
	pageSize := f.PageSize
	if pageSize < 1 {
		pageSize = defaultPageSize
	}

	items, err := s.items.List(ctx, repository.ListQuery{
		Category: f.Category,
		Status:   f.Status,
		SellerID: f.SellerID,
		Offset:   (page - 1) * pageSize,
		Limit:    pageSize,
	})
	if err != nil {
		return nil, err
	}
	return toItemResponses(items), nil
}

func (s *itemService) Featured(ctx context.Context, limit int) ([]dto.ItemResponse, error) {
	if limit < 1 {
		limit = defaultFeatured
	}
	if limit > maxFeaturedLimit {
		limit = maxFeaturedLimit
	}

	items, err := s.items.Featured(ctx, limit)
	if err != nil {
		return nil, err
	}
	return toItemResponses(items), nil
}

func (s *itemService) Detail(ctx context.Context, id string) (*dto.ItemResponse, error) {
	item, err := s.items.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("item not found")
	}
	if err != nil {
		return nil, err
	}

	resp := toItemResponse(item)

	seller, err := s.users.FindByID(ctx, item.SellerID)
	if err == nil {
		avg, ratingErr := s.ratings.AverageForUser(ctx, seller.ID)
		if ratingErr != nil {
			avg = nil
		}
		resp.Seller = &dto.SellerSummary{
			ID:            seller.ID,
			Name:          seller.Name,
			Email:         seller.Email,
			MemberType:    seller.MemberType,
			Verified:      seller.Verified,
			AverageRating: roundRating(avg),
		}
	}

	return &resp, nil
}

// Create normalizes the payload into storage field naming, validates
// it, and stores the listing. The seller always comes from the
// authenticated identity, never from the body.
func (s *itemService) Create(ctx context.Context, sellerID string, payload map[string]any) (string, []string, error) {
	normalized := fieldconv.NormalizeItemPayload(payload)

	if errs := validation.ValidateItem(normalized); len(errs) > 0 {
		return "", errs, nil
	}

	price, _ := asFloat(normalized["price"])
	item := &model.Item{
		SellerID:  sellerID,
		Title:     stringValue(normalized, "title"),
		Category:  stringValue(normalized, "category"),
		Price:     price,
		Condition: stringValue(normalized, "condition"),
		Status:    model.StatusAvailable,
		Images:    fieldconv.EncodeImages(imageList(normalized)),
	}
	if desc := stringValue(normalized, "description"); desc != "" {
		item.Description = &desc
	}
	applyAttributeFields(item, normalized)

	if err := s.items.Create(ctx, item); err != nil {
		return "", nil, err
	}
	return item.ID, nil, nil
}

// Update applies a partial update after an ownership check. A status
// change additionally appends an audit row; the two writes are separate
// statements by design.
func (s *itemService) Update(ctx context.Context, userID, itemID string, payload map[string]any) ([]string, error) {
	item, err := s.ownedItem(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}

	normalized := fieldconv.NormalizeItemPayload(payload)
	if errs := validation.ValidateItemUpdate(normalized); len(errs) > 0 {
		return errs, nil
	}

	updates := map[string]any{}
	if _, ok := normalized["title"]; ok {
		updates["title"] = stringValue(normalized, "title")
	}
	if _, ok := normalized["description"]; ok {
		updates["description"] = stringValue(normalized, "description")
	}
	if _, ok := normalized["price"]; ok {
		price, _ := asFloat(normalized["price"])
		updates["price"] = price
	}
	if _, ok := normalized["condition"]; ok {
		updates["condition"] = stringValue(normalized, "condition")
	}
	if _, ok := normalized["images"]; ok {
		updates["images"] = fieldconv.EncodeImages(imageList(normalized))
	}
	for _, column := range attributeStringColumns {
		if _, ok := normalized[column]; ok {
			updates[column] = stringValue(normalized, column)
		}
	}
	if raw, ok := normalized["assembly_required"]; ok {
		updates["assembly_required"] = asBool(raw)
	}

	newStatus := stringValue(normalized, "status")
	statusChanged := newStatus != "" && newStatus != item.Status
	if _, ok := normalized["status"]; ok {
		updates["status"] = newStatus
	}

	if err := s.items.Update(ctx, itemID, updates); err != nil {
		return nil, err
	}

	if statusChanged {
		s.appendHistory(ctx, item, newStatus, userID, normalized)
	}
	return nil, nil
}

// Delete soft-deletes: the row stays with the DELETED sentinel.
func (s *itemService) Delete(ctx context.Context, userID, itemID string) error {
	item, err := s.ownedItem(ctx, userID, itemID)
	if err != nil {
		return err
	}

	if err := s.items.Update(ctx, itemID, map[string]any{"status": model.StatusDeleted}); err != nil {
		return err
	}

	if item.Status != model.StatusDeleted {
		s.appendHistory(ctx, item, model.StatusDeleted, userID, nil)
	}
	return nil
}

// RecordView increments unconditionally: no auth, no dedup.
func (s *itemService) RecordView(ctx context.Context, itemID string) error {
	return s.items.IncrementViewCount(ctx, itemID)
}

func (s *itemService) History(ctx context.Context, userID, itemID string) ([]dto.StatusHistoryResponse, error) {
	if _, err := s.ownedItem(ctx, userID, itemID); err != nil {
		return nil, err
	}

	entries, err := s.history.ListByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.StatusHistoryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.StatusHistoryResponse{
			ID:        e.ID,
			ItemID:    e.ItemID,
			OldStatus: e.OldStatus,
			NewStatus: e.NewStatus,
			BuyerID:   e.BuyerID,
			BuyerName: e.BuyerName,
			ChangedBy: e.ChangedBy,
			CreatedAt: e.CreatedAt,
		})
	}
	return out, nil
}

func (s *itemService) ownedItem(ctx context.Context, userID, itemID string) (*model.Item, error) {
	item, err := s.items.FindByID(ctx, itemID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("item not found")
	}
	if err != nil {
		return nil, err
	}
	if item.SellerID != userID {
		return nil, apperror.Forbidden("you do not own this item")
	}
	return item, nil
}

func (s *itemService) appendHistory(ctx context.Context, item *model.Item, newStatus, changedBy string, payload map[string]any) {
	oldStatus := item.Status
	entry := &model.ItemStatusHistory{
		ItemID:    item.ID,
		OldStatus: &oldStatus,
		NewStatus: newStatus,
		ChangedBy: changedBy,
	}
	if payload != nil {
		if buyerID := stringValue(payload, "buyer_id"); buyerID != "" {
			entry.BuyerID = &buyerID
		}
		if buyerName := stringValue(payload, "buyer_name"); buyerName != "" {
			entry.BuyerName = &buyerName
		}
	}
	// Audit failures must not fail the update that already happened.
	if err := s.history.Create(ctx, entry); err != nil {
		log.Printf("failed to record status change for item %s: %v", item.ID, err)
	}
}

var attributeStringColumns = []string{
	"isbn", "course_code", "module_name", "edition", "author",
	"brand", "model_number", "warranty_status", "original_purchase_date", "accessories_included",
	"item_type", "dimensions", "material", "condition_details",
	"size", "clothing_brand", "material_type", "color", "gender",
	"sports_brand", "size_dimensions", "sport_type", "sports_condition_details",
}

func applyAttributeFields(item *model.Item, p map[string]any) {
	targets := map[string]**string{
		"isbn":                     &item.ISBN,
		"course_code":              &item.CourseCode,
		"module_name":              &item.ModuleName,
		"edition":                  &item.Edition,
		"author":                   &item.Author,
		"brand":                    &item.Brand,
		"model_number":             &item.ModelNumber,
		"warranty_status":          &item.WarrantyStatus,
		"original_purchase_date":   &item.OriginalPurchaseDate,
		"accessories_included":     &item.AccessoriesIncluded,
		"item_type":                &item.ItemType,
		"dimensions":               &item.Dimensions,
		"material":                 &item.Material,
		"condition_details":        &item.ConditionDetails,
		"size":                     &item.Size,
		"clothing_brand":           &item.ClothingBrand,
		"material_type":            &item.MaterialType,
		"color":                    &item.Color,
		"gender":                   &item.Gender,
		"sports_brand":             &item.SportsBrand,
		"size_dimensions":          &item.SizeDimensions,
		"sport_type":               &item.SportType,
		"sports_condition_details": &item.SportsConditionDetails,
	}

	for column, target := range targets {
		if value := stringValue(p, column); value != "" {
			v := value
			*target = &v
		}
	}

	if raw, ok := p["assembly_required"]; ok {
		b := asBool(raw)
		item.AssemblyRequired = &b
	}
}

func splitMulti(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func stringValue(p map[string]any, key string) string {
	v, _ := p[key].(string)
	return v
}

func imageList(p map[string]any) []string {
	raw, ok := p["images"].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, entry := range raw {
		if s, ok := entry.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case string:
		parsed, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

func asBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		return b == "true" || b == "1"
	case float64:
		return b != 0
	default:
		return false
	}
}
