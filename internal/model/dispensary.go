package model

import "time"

// Dispensary directory statuses.
const (
	DispensaryActive  = "Active"
	DispensaryPending = "Pending"
	DispensaryClosed  = "Closed"
)

// Dispensary is a standalone directory entry for a storefront location.
type Dispensary struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	Address   string    `json:"address" gorm:"type:text"`
	City      string    `json:"city" gorm:"type:varchar(100)"`
	Phone     string    `json:"phone" gorm:"type:varchar(50)"`
	Hours     string    `json:"hours" gorm:"type:varchar(255)"`
	License   string    `json:"license" gorm:"type:varchar(100)"`
	Status    string    `json:"status" gorm:"type:varchar(50);not null;default:'Active'"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DispensaryPatch enumerates the mutable dispensary fields.
type DispensaryPatch struct {
	Name    *string `json:"name,omitempty"`
	Address *string `json:"address,omitempty"`
	City    *string `json:"city,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Hours   *string `json:"hours,omitempty"`
	License *string `json:"license,omitempty"`
	Status  *string `json:"status,omitempty"`
}

func (patch DispensaryPatch) Apply(d *Dispensary) {
	if patch.Name != nil {
		d.Name = *patch.Name
	}
	if patch.Address != nil {
		d.Address = *patch.Address
	}
	if patch.City != nil {
		d.City = *patch.City
	}
	if patch.Phone != nil {
		d.Phone = *patch.Phone
	}
	if patch.Hours != nil {
		d.Hours = *patch.Hours
	}
	if patch.License != nil {
		d.License = *patch.License
	}
	if patch.Status != nil {
		d.Status = *patch.Status
	}
}

func (patch DispensaryPatch) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if patch.Name != nil {
		fields["name"] = *patch.Name
	}
	if patch.Address != nil {
		fields["address"] = *patch.Address
	}
	if patch.City != nil {
		fields["city"] = *patch.City
	}
	if patch.Phone != nil {
		fields["phone"] = *patch.Phone
	}
	if patch.Hours != nil {
		fields["hours"] = *patch.Hours
	}
	if patch.License != nil {
		fields["license"] = *patch.License
	}
	if patch.Status != nil {
		fields["status"] = *patch.Status
	}
	return fields
}
