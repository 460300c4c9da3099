package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sampleOption struct {
	Value string `json:"value" validate:"required"`
}

type sampleInput struct {
	UserID    uint           `json:"userId" validate:"required"`
	TimeSpent *int           `json:"timeSpent" validate:"omitempty,gte=0"`
	Level     string         `json:"level" validate:"required,oneof=beginner advanced"`
	Options   []sampleOption `json:"options" validate:"min=1,dive"`
}

func TestValidateStructReportsJSONFieldNames(t *testing.T) {
	negative := -5
	errs := ValidateStruct(&sampleInput{
		TimeSpent: &negative,
		Level:     "expert",
		Options:   []sampleOption{{Value: ""}},
	})

	assert.Equal(t, "is required", errs["userId"])
	assert.Equal(t, "must be greater than or equal to 0", errs["timeSpent"])
	assert.Equal(t, "must be one of [beginner advanced]", errs["level"])
	assert.Equal(t, "is required", errs["options[0].value"])
}

func TestValidateStructValid(t *testing.T) {
	zero := 0
	errs := ValidateStruct(&sampleInput{
		UserID:    1,
		TimeSpent: &zero,
		Level:     "beginner",
		Options:   []sampleOption{{Value: "a"}},
	})
	assert.Empty(t, errs)
}
