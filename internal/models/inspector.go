package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type InspectorRole string
type InspectorStatus string

const (
	InspectorRoleJunior     InspectorRole = "junior"
	InspectorRoleSenior     InspectorRole = "senior"
	InspectorRoleSupervisor InspectorRole = "supervisor"

	InspectorStatusActive    InspectorStatus = "active"
	InspectorStatusInactive  InspectorStatus = "inactive"
	InspectorStatusSuspended InspectorStatus = "suspended"
)

func (r InspectorRole) IsValid() bool {
	return r == InspectorRoleJunior || r == InspectorRoleSenior || r == InspectorRoleSupervisor
}

// Inspector is a facility employee authorized to perform inspections while
// active. Role and status change only through the transition methods below.
type Inspector struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Email         string             `json:"email" bson:"email" validate:"required,email"`
	FirstName     string             `json:"first_name" bson:"first_name" validate:"required"`
	LastName      string             `json:"last_name" bson:"last_name" validate:"required"`
	Role          InspectorRole      `json:"role" bson:"role" validate:"required"`
	LicenseNumber string             `json:"license_number" bson:"license_number" validate:"required"`
	Status        InspectorStatus    `json:"status" bson:"status"`
	Phone         string             `json:"phone,omitempty" bson:"phone,omitempty"`
	PasswordHash  string             `json:"-" bson:"password_hash"`
	HireDate      time.Time          `json:"hire_date" bson:"hire_date"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at" bson:"updated_at"`
}

// Normalize canonicalizes the fields that act as lookup keys.
func (i *Inspector) Normalize() {
	i.Email = strings.ToLower(strings.TrimSpace(i.Email))
	i.FirstName = strings.TrimSpace(i.FirstName)
	i.LastName = strings.TrimSpace(i.LastName)
	i.LicenseNumber = strings.ToUpper(strings.TrimSpace(i.LicenseNumber))
	i.Phone = strings.TrimSpace(i.Phone)
}

func (i *Inspector) FullName() string {
	return i.FirstName + " " + i.LastName
}

func (i *Inspector) IsActive() bool {
	return i.Status == InspectorStatusActive
}

func (i *Inspector) CanPerformInspections() bool {
	return i.IsActive()
}

func (i *Inspector) IsSupervisor() bool {
	return i.Role == InspectorRoleSupervisor
}

func (i *Inspector) CanSupervise() bool {
	return i.IsActive() && i.IsSupervisor()
}

func (i *Inspector) Activate() {
	i.Status = InspectorStatusActive
	i.UpdatedAt = time.Now().UTC()
}

func (i *Inspector) Deactivate() {
	i.Status = InspectorStatusInactive
	i.UpdatedAt = time.Now().UTC()
}

func (i *Inspector) Suspend() {
	i.Status = InspectorStatusSuspended
	i.UpdatedAt = time.Now().UTC()
}

func (i *Inspector) UpdateRole(role InspectorRole) {
	i.Role = role
	i.UpdatedAt = time.Now().UTC()
}
