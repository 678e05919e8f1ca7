package model

import "time"

// Product represents an item in the store catalog
type Product struct {
	ID            uint      `json:"id" gorm:"primarykey"`
	Name          string    `json:"name" gorm:"type:varchar(255);not null"`
	Description   string    `json:"description" gorm:"type:text"`
	Price         float64   `json:"price" gorm:"not null"`
	StockQuantity int       `json:"stock_quantity" gorm:"not null;default:0"`
	Category      string    `json:"category" gorm:"type:varchar(100)"`
	StrainType    string    `json:"strain_type" gorm:"type:varchar(50)"`
	THCContent    float64   `json:"thc_content"`
	CBDContent    float64   `json:"cbd_content"`
	ImageURL      string    `json:"image_url" gorm:"type:text"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ProductPatch enumerates the mutable product fields. Nil means leave
// the stored value unchanged.
type ProductPatch struct {
	Name          *string  `json:"name,omitempty"`
	Description   *string  `json:"description,omitempty"`
	Price         *float64 `json:"price,omitempty"`
	StockQuantity *int     `json:"stock_quantity,omitempty"`
	Category      *string  `json:"category,omitempty"`
	StrainType    *string  `json:"strain_type,omitempty"`
	THCContent    *float64 `json:"thc_content,omitempty"`
	CBDContent    *float64 `json:"cbd_content,omitempty"`
	ImageURL      *string  `json:"image_url,omitempty"`
}

// Apply merges the set fields into p.
func (patch ProductPatch) Apply(p *Product) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.StockQuantity != nil {
		p.StockQuantity = *patch.StockQuantity
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.StrainType != nil {
		p.StrainType = *patch.StrainType
	}
	if patch.THCContent != nil {
		p.THCContent = *patch.THCContent
	}
	if patch.CBDContent != nil {
		p.CBDContent = *patch.CBDContent
	}
	if patch.ImageURL != nil {
		p.ImageURL = *patch.ImageURL
	}
}

// Fields returns the set fields as a column-to-value map for
// parameterized SET clauses.
func (patch ProductPatch) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if patch.Name != nil {
		fields["name"] = *patch.Name
	}
	if patch.Description != nil {
		fields["description"] = *patch.Description
	}
	if patch.Price != nil {
		fields["price"] = *patch.Price
	}
	if patch.StockQuantity != nil {
		fields["stock_quantity"] = *patch.StockQuantity
	}
	if patch.Category != nil {
		fields["category"] = *patch.Category
	}
	if patch.StrainType != nil {
		fields["strain_type"] = *patch.StrainType
	}
	if patch.THCContent != nil {
		fields["thc_content"] = *patch.THCContent
	}
	if patch.CBDContent != nil {
		fields["cbd_content"] = *patch.CBDContent
	}
	if patch.ImageURL != nil {
		fields["image_url"] = *patch.ImageURL
	}
	return fields
}
