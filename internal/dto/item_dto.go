package dto

import "time"

// SellerSummary is the reduced seller projection joined into the item
// detail response.
type SellerSummary struct {
	ID            string   `json:"id"`
	Name          *string  `json:"name"`
	Email         string   `json:"email"`
	MemberType    string   `json:"memberType"`
	Verified      bool     `json:"verified"`
	AverageRating *float64 `json:"averageRating"`
}

// ItemResponse is the client-facing item shape: camelCase keys, the
// image list deserialized into real strings, and only the populated
// category-specific fields.
type ItemResponse struct {
	ID          string   `json:"id"`
	SellerID    string   `json:"sellerId"`
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	Category    string   `json:"category"`
	Price       float64  `json:"price"`
	Condition   string   `json:"condition"`
	Status      string   `json:"status"`
	ViewCount   int      `json:"viewCount"`
	Images      []string `json:"images"`

	ISBN       *string `json:"isbn,omitempty"`
	CourseCode *string `json:"courseCode,omitempty"`
	ModuleName *string `json:"moduleName,omitempty"`
	Edition    *string `json:"edition,omitempty"`
	Author     *string `json:"author,omitempty"`

	Brand                *string `json:"brand,omitempty"`
	ModelNumber          *string `json:"modelNumber,omitempty"`
	WarrantyStatus       *string `json:"warrantyStatus,omitempty"`
	OriginalPurchaseDate *string `json:"originalPurchaseDate,omitempty"`
	AccessoriesIncluded  *string `json:"accessoriesIncluded,omitempty"`

	ItemType         *string `json:"itemType,omitempty"`
	Dimensions       *string `json:"dimensions,omitempty"`
	Material         *string `json:"material,omitempty"`
	AssemblyRequired *bool   `json:"assemblyRequired,omitempty"`
	ConditionDetails *string `json:"conditionDetails,omitempty"`

	Size          *string `json:"size,omitempty"`
	ClothingBrand *string `json:"clothingBrand,omitempty"`
	MaterialType  *string `json:"materialType,omitempty"`
	Color         *string `json:"color,omitempty"`
	Gender        *string `json:"gender,omitempty"`

	SportsBrand            *string `json:"sportsBrand,omitempty"`
	SizeDimensions         *string `json:"sizeDimensions,omitempty"`
	SportType              *string `json:"sportType,omitempty"`
	SportsConditionDetails *string `json:"sportsConditionDetails,omitempty"`

	PostDate  time.Time `json:"postDate"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Seller *SellerSummary `json:"seller,omitempty"`
}

// StatusHistoryResponse is one row of an item's status audit trail.
type StatusHistoryResponse struct {
	ID        string    `json:"id"`
	ItemID    string    `json:"itemId"`
	OldStatus *string   `json:"oldStatus"`
	NewStatus string    `json:"newStatus"`
	BuyerID   *string   `json:"buyerId"`
	BuyerName *string   `json:"buyerName"`
	ChangedBy string    `json:"changedBy"`
	CreatedAt time.Time `json:"createdAt"`
}
