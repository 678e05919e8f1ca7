package model

import "time"

// Employee roles used by the POS. Convention only, not enforced by the
// storage layer.
const (
	RoleAdmin     = "admin"
	RoleManager   = "manager"
	RoleCashier   = "cashier"
	RoleBudtender = "budtender"
)

// Employee represents a staff member able to log into the register
type Employee struct {
	ID           uint      `json:"id" gorm:"primarykey"`
	FirstName    string    `json:"first_name" gorm:"type:varchar(100);not null"`
	LastName     string    `json:"last_name" gorm:"type:varchar(100);not null"`
	Email        string    `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Role         string    `json:"role" gorm:"type:varchar(50);not null"`
	PasswordHash string    `json:"-" gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// EmployeePatch enumerates the mutable employee fields.
type EmployeePatch struct {
	FirstName    *string `json:"first_name,omitempty"`
	LastName     *string `json:"last_name,omitempty"`
	Email        *string `json:"email,omitempty"`
	Role         *string `json:"role,omitempty"`
	PasswordHash *string `json:"-"`
}

func (patch EmployeePatch) Apply(e *Employee) {
	if patch.FirstName != nil {
		e.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		e.LastName = *patch.LastName
	}
	if patch.Email != nil {
		e.Email = *patch.Email
	}
	if patch.Role != nil {
		e.Role = *patch.Role
	}
	if patch.PasswordHash != nil {
		e.PasswordHash = *patch.PasswordHash
	}
}

func (patch EmployeePatch) Fields() map[string]interface{} {
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
	if patch.Role != nil {
		fields["role"] = *patch.Role
	}
	if patch.PasswordHash != nil {
		fields["password_hash"] = *patch.PasswordHash
	}
	return fields
}
