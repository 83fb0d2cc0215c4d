package service

import (
	"math"

	"github.com/studentbay/backend/internal/dto"
	"github.com/studentbay/backend/internal/model"
	"github.com/studentbay/backend/pkg/fieldconv"
)

func toItemResponse(item *model.Item) dto.ItemResponse {
	return dto.ItemResponse{
		ID:          item.ID,
		SellerID:    item.SellerID,
		Title:       item.Title,
		Description: item.Description,
		Category:    item.Category,
		Price:       item.Price,
		Condition:   item.Condition,
		Status:      item.Status,
		ViewCount:   item.ViewCount,
		Images:      fieldconv.ParseImages(item.Images),

		ISBN:       item.ISBN,
		CourseCode: item.CourseCode,
		ModuleName: item.ModuleName,
		Edition:    item.Edition,
		Author:     item.Author,

		Brand:                item.Brand,
		ModelNumber:          item.ModelNumber,
		WarrantyStatus:       item.WarrantyStatus,
		OriginalPurchaseDate: item.OriginalPurchaseDate,
		AccessoriesIncluded:  item.AccessoriesIncluded,

		ItemType:         item.ItemType,
		Dimensions:       item.Dimensions,
		Material:         item.Material,
		AssemblyRequired: item.AssemblyRequired,
		ConditionDetails: item.ConditionDetails,

		Size:          item.Size,
		ClothingBrand: item.ClothingBrand,
		MaterialType:  item.MaterialType,
		Color:         item.Color,
		Gender:        item.Gender,

		SportsBrand:            item.SportsBrand,
		SizeDimensions:         item.SizeDimensions,
		SportType:              item.SportType,
		SportsConditionDetails: item.SportsConditionDetails,

		PostDate:  item.PostDate,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}

func toItemResponses(items []*model.Item) []dto.ItemResponse {
	out := make([]dto.ItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toItemResponse(item))
	}
	return out
}

func toUserResponse(user *model.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:             user.ID,
		Email:          user.Email,
		Name:           user.Name,
		MemberType:     user.MemberType,
		Verified:       user.Verified,
		Avatar:         user.Avatar,
		Bio:            user.Bio,
		University:     user.University,
		EnrollmentYear: user.EnrollmentYear,
		JoinDate:       user.JoinDate,
	}
}

// roundRating rounds an average rating to one decimal.
func roundRating(avg *float64) *float64 {
	if avg == nil {
		return nil
	}
	rounded := math.Round(*avg*10) / 10
	return &rounded
}
