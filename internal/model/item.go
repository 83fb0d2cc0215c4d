package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Listing categories.
const (
	CategoryTextbook    = "TEXTBOOK"
	CategoryElectronics = "ELECTRONICS"
	CategoryFurniture   = "FURNITURE"
	CategoryApparel     = "APPAREL"
	CategorySports      = "SPORTS"
)

// Listing statuses. DELETED is the soft-delete sentinel: the row stays,
// default listings and search exclude it.
const (
	StatusAvailable = "AVAILABLE"
	StatusReserved  = "RESERVED"
	StatusSold      = "SOLD"
	StatusDeleted   = "DELETED"
)

type Item struct {
	ID       string `gorm:"primaryKey;size:36" json:"id"`
	SellerID string `gorm:"size:36;not null;index" json:"sellerId"`
	Seller   *User  `gorm:"foreignKey:SellerID;constraint:OnDelete:CASCADE" json:"-"`

	Title       string  `gorm:"size:200;not null" json:"title"`
	Description *string `gorm:"size:2000" json:"description"`
	Category    string  `gorm:"size:20;not null;index" json:"category"`
	Price       float64 `gorm:"not null" json:"price"`
	Condition   string  `gorm:"size:20;not null" json:"condition"`
	Status      string  `gorm:"size:20;not null;default:AVAILABLE;index" json:"status"`
	ViewCount   int     `gorm:"not null;default:0" json:"viewCount"`

	// Serialized JSON array of image URLs, at most 5. Exposed to
	// clients as a real list via the item response DTO.
	Images string `gorm:"type:text" json:"-"`

	// Textbook fields
	ISBN       *string `gorm:"column:isbn;size:32" json:"isbn,omitempty"`
	CourseCode *string `gorm:"size:50" json:"courseCode,omitempty"`
	ModuleName *string `gorm:"size:100" json:"moduleName,omitempty"`
	Edition    *string `gorm:"size:50" json:"edition,omitempty"`
	Author     *string `gorm:"size:100" json:"author,omitempty"`

	// Electronics fields
	Brand                *string `gorm:"size:100" json:"brand,omitempty"`
	ModelNumber          *string `gorm:"size:100" json:"modelNumber,omitempty"`
	WarrantyStatus       *string `gorm:"size:100" json:"warrantyStatus,omitempty"`
	OriginalPurchaseDate *string `gorm:"size:50" json:"originalPurchaseDate,omitempty"`
	AccessoriesIncluded  *string `gorm:"size:500" json:"accessoriesIncluded,omitempty"`

	// Furniture fields
	ItemType         *string `gorm:"size:100" json:"itemType,omitempty"`
	Dimensions       *string `gorm:"size:100" json:"dimensions,omitempty"`
	Material         *string `gorm:"size:100" json:"material,omitempty"`
	AssemblyRequired *bool   `json:"assemblyRequired,omitempty"`
	ConditionDetails *string `gorm:"size:500" json:"conditionDetails,omitempty"`

	// Apparel fields
	Size          *string `gorm:"size:50" json:"size,omitempty"`
	ClothingBrand *string `gorm:"size:100" json:"clothingBrand,omitempty"`
	MaterialType  *string `gorm:"size:100" json:"materialType,omitempty"`
	Color         *string `gorm:"size:50" json:"color,omitempty"`
	Gender        *string `gorm:"size:20" json:"gender,omitempty"`

	// Sports fields
	SportsBrand            *string `gorm:"size:100" json:"sportsBrand,omitempty"`
	SizeDimensions         *string `gorm:"size:100" json:"sizeDimensions,omitempty"`
	SportType              *string `gorm:"size:100" json:"sportType,omitempty"`
	SportsConditionDetails *string `gorm:"size:500" json:"sportsConditionDetails,omitempty"`

	PostDate  time.Time `gorm:"not null;index" json:"postDate"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	if i.PostDate.IsZero() {
		i.PostDate = time.Now()
	}
	return nil
}
