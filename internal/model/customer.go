package model

import "time"

// Customer represents a registered buyer
type Customer struct {
	ID            uint      `json:"id" gorm:"primarykey"`
	FirstName     string    `json:"first_name" gorm:"type:varchar(100);not null"`
	LastName      string    `json:"last_name" gorm:"type:varchar(100);not null"`
	Email         string    `json:"email" gorm:"type:varchar(255);uniqueIndex"`
	Phone         string    `json:"phone" gorm:"type:varchar(50)"`
	DateOfBirth   string    `json:"date_of_birth" gorm:"type:varchar(20)"`
	LicenseNumber string    `json:"license_number" gorm:"type:varchar(100)"`
	Address       string    `json:"address" gorm:"type:text"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CustomerPatch enumerates the mutable customer fields.
type CustomerPatch struct {
	FirstName     *string `json:"first_name,omitempty"`
	LastName      *string `json:"last_name,omitempty"`
	Email         *string `json:"email,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	DateOfBirth   *string `json:"date_of_birth,omitempty"`
	LicenseNumber *string `json:"license_number,omitempty"`
	Address       *string `json:"address,omitempty"`
}

func (patch CustomerPatch) Apply(c *Customer) {
	if patch.FirstName != nil {
		c.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		c.LastName = *patch.LastName
	}
	if patch.Email != nil {
		c.Email = *patch.Email
	}
	if patch.Phone != nil {
		c.Phone = *patch.Phone
	}
	if patch.DateOfBirth != nil {
		c.DateOfBirth = *patch.DateOfBirth
	}
	if patch.LicenseNumber != nil {
		c.LicenseNumber = *patch.LicenseNumber
	}
	if patch.Address != nil {
		c.Address = *patch.Address
	}
}

func (patch CustomerPatch) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if patch.FirstName != nil {
		fields["first_name"] = *patch.FirstName
	}
	if patch.LastName != nil {
		fields["last_name"] = *patch.LastName
	}
	if patch.Email != nil {
		fields["email"] = *patch.Email
	}
	if patch.Phone != nil {
		fields["phone"] = *patch.Phone
	}
	if patch.DateOfBirth != nil {
		fields["date_of_birth"] = *patch.DateOfBirth
	}
	if patch.LicenseNumber != nil {
		fields["license_number"] = *patch.LicenseNumber
	}
	if patch.Address != nil {
		fields["address"] = *patch.Address
	}
	return fields
}
