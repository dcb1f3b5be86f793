package models_test

import (
	"testing"

	"vinspect/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestInspector_lifecycle(t *testing.T) {
	inspector := &models.Inspector{
		Email:         "Ana.Reyes@Example.com",
		FirstName:     "Ana",
		LastName:      "Reyes",
		Role:          models.InspectorRoleSenior,
		LicenseNumber: "insp-0042",
		Status:        models.InspectorStatusActive,
	}
	inspector.Normalize()

	assert.Equal(t, "ana.reyes@example.com", inspector.Email)
	assert.Equal(t, "INSP-0042", inspector.LicenseNumber)
	assert.Equal(t, "Ana Reyes", inspector.FullName())
	assert.True(t, inspector.CanPerformInspections())
	assert.False(t, inspector.CanSupervise())

	inspector.Suspend()
	assert.False(t, inspector.CanPerformInspections())

	inspector.Activate()
	inspector.UpdateRole(models.InspectorRoleSupervisor)
	assert.True(t, inspector.IsSupervisor())
	assert.True(t, inspector.CanSupervise())

	inspector.Deactivate()
	assert.False(t, inspector.CanSupervise())
}
