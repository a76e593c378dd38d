package models

import "time"

// Category groups products in the catalog.
type Category struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name      string    `json:"name" gorm:"uniqueIndex;type:varchar(50);not null" validate:"required,min=1,max=50"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Product represents a product in the store.
type Product struct {
	ID             string                 `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name           string                 `json:"name" gorm:"type:varchar(100);not null" validate:"required,min=1,max=100"`
	Description    string                 `json:"description" validate:"omitempty,max=2000"`
	Price          float64                `json:"price" gorm:"not null" validate:"gte=0"`
	CategoryID     string                 `json:"category_id" gorm:"index;type:varchar(36);not null" validate:"required"`
	Category       *Category              `json:"-" gorm:"foreignKey:CategoryID"`
	Stock          int                    `json:"stock" validate:"gte=0"`
	ImageURL       string                 `json:"image_url" validate:"omitempty,max=500"`
	Specifications []ProductSpecification `json:"specifications" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" validate:"dive"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

// ProductSpecification is a single name/value characteristic of a product.
type ProductSpecification struct {
	ID        string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ProductID string `json:"product_id" gorm:"index;type:varchar(36);not null"`
	SpecName  string `json:"spec_name" gorm:"type:varchar(100);not null" validate:"required,max=100"`
	SpecValue string `json:"spec_value" gorm:"type:varchar(100);not null" validate:"required,max=100"`
}

// CartItem is one product line in a user's cart.
type CartItem struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `json:"user_id" gorm:"index;type:varchar(36);not null"`
	User      *User     `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	ProductID string    `json:"product_id" gorm:"index;type:varchar(36);not null"`
	Product   *Product  `json:"-" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Quantity  int       `json:"quantity" gorm:"not null;default:1"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName keeps the historical table name for cart rows.
func (CartItem) TableName() string { return "cart" }
