package model

import "time"

// CatalogListing is a product record on the external Weedmaps
// marketplace. It mirrors the product shape but is an independent
// table with no foreign key into products.
type CatalogListing struct {
	ID            uint      `json:"id" gorm:"primarykey"`
	WeedmapsID    string    `json:"weedmaps_id,omitempty" gorm:"type:varchar(100)"`
	Name          string    `json:"name" gorm:"type:varchar(255);not null"`
	Description   string    `json:"description,omitempty" gorm:"type:text"`
	Published     bool      `json:"published"`
	ExternalID    string    `json:"external_id,omitempty" gorm:"type:varchar(100)"`
	Picture       string    `json:"picture,omitempty" gorm:"type:text"`
	Featured      bool      `json:"featured"`
	Category      string    `json:"category,omitempty" gorm:"type:varchar(100)"`
	Tags          string    `json:"tags,omitempty" gorm:"type:text"`
	Strain        string    `json:"strain,omitempty" gorm:"type:varchar(100)"`
	Genetics      string    `json:"genetics,omitempty" gorm:"type:varchar(100)"`
	GalleryImages string    `json:"gallery_images,omitempty" gorm:"type:text"`
	CBDPercentage float64   `json:"cbd_percentage,omitempty"`
	THCPercentage float64   `json:"thc_percentage,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName keeps the marketplace table name used by the register data files.
func (CatalogListing) TableName() string {
	return "weedmaps_products"
}

// CatalogListingPatch enumerates the mutable listing fields.
type CatalogListingPatch struct {
	WeedmapsID    *string  `json:"weedmaps_id,omitempty"`
	Name          *string  `json:"name,omitempty"`
	Description   *string  `json:"description,omitempty"`
	Published     *bool    `json:"published,omitempty"`
	ExternalID    *string  `json:"external_id,omitempty"`
	Picture       *string  `json:"picture,omitempty"`
	Featured      *bool    `json:"featured,omitempty"`
	Category      *string  `json:"category,omitempty"`
	Tags          *string  `json:"tags,omitempty"`
	Strain        *string  `json:"strain,omitempty"`
	Genetics      *string  `json:"genetics,omitempty"`
	GalleryImages *string  `json:"gallery_images,omitempty"`
	CBDPercentage *float64 `json:"cbd_percentage,omitempty"`
	THCPercentage *float64 `json:"thc_percentage,omitempty"`
}

func (patch CatalogListingPatch) Apply(l *CatalogListing) {
	if patch.WeedmapsID != nil {
		l.WeedmapsID = *patch.WeedmapsID
	}
	if patch.Name != nil {
		l.Name = *patch.Name
	}
	if patch.Description != nil {
		l.Description = *patch.Description
	}
	if patch.Published != nil {
		l.Published = *patch.Published
	}
	if patch.ExternalID != nil {
		l.ExternalID = *patch.ExternalID
	}
	if patch.Picture != nil {
		l.Picture = *patch.Picture
	}
	if patch.Featured != nil {
		l.Featured = *patch.Featured
	}
	if patch.Category != nil {
		l.Category = *patch.Category
	}
	if patch.Tags != nil {
		l.Tags = *patch.Tags
	}
	if patch.Strain != nil {
		l.Strain = *patch.Strain
	}
	if patch.Genetics != nil {
		l.Genetics = *patch.Genetics
	}
	if patch.GalleryImages != nil {
		l.GalleryImages = *patch.GalleryImages
	}
	if patch.CBDPercentage != nil {
		l.CBDPercentage = *patch.CBDPercentage
	}
	if patch.THCPercentage != nil {
		l.THCPercentage = *patch.THCPercentage
	}
}

func (patch CatalogListingPatch) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if patch.WeedmapsID != nil {
		fields["weedmaps_id"] = *patch.WeedmapsID
	}
	if patch.Name != nil {
		fields["name"] = *patch.Name
	}
	if patch.Description != nil {
		fields["description"] = *patch.Description
	}
	if patch.Published != nil {
		fields["published"] = *patch.Published
	}
	if patch.ExternalID != nil {
		fields["external_id"] = *patch.ExternalID
	}
	if patch.Picture != nil {
		fields["picture"] = *patch.Picture
	}
	if patch.Featured != nil {
		fields["featured"] = *patch.Featured
	}
	if patch.Category != nil {
		fields["category"] = *patch.Category
	}
	if patch.Tags != nil {
		fields["tags"] = *patch.Tags
	}
	if patch.Strain != nil {
		fields["strain"] = *patch.Strain
	}
	if patch.Genetics != nil {
		fields["genetics"] = *patch.Genetics
	}
	if patch.GalleryImages != nil {
		fields["gallery_images"] = *patch.GalleryImages
	}
	if patch.CBDPercentage != nil {
		fields["cbd_percentage"] = *patch.CBDPercentage
	}
	if patch.THCPercentage != nil {
		fields["thc_percentage"] = *patch.THCPercentage
	}
	return fields
}
