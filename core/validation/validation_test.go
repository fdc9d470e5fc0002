package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type auditInput struct {
	Auditor string `json:"auditor" validate:"notblank,max=10"`
	Status  string `json:"status" validate:"omitempty,oneof=in_progress completed"`
	Email   string `json:"email" validate:"omitempty,email"`
}

func TestStruct(t *testing.T) {
	v := New()

	assert.NoError(t, v.Struct(auditInput{Auditor: "Ivanov"}))

	err := v.Struct(auditInput{Auditor: "   "})
	assert.EqualError(t, err, "auditor is required")

	err = v.Struct(auditInput{Auditor: "A very long auditor name"})
	assert.EqualError(t, err, "auditor must be at most 10 characters")

	err = v.Struct(auditInput{Auditor: "Ivanov", Status: "open", Email: "nope"})
	assert.EqualError(t, err, "status must be one of [in_progress completed]; email must be a valid email")
}
