package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocumentTypeAppliesTo(t *testing.T) {
	dt := DocumentType{
		Name:                 "ISO 9001",
		ApplicableCategories: StringArray{"Manufacturing", "Packaging"},
	}

	assert.True(t, dt.AppliesTo("Manufacturing"))
	assert.True(t, dt.AppliesTo("Packaging"))
	assert.False(t, dt.AppliesTo("Logistics"))
	assert.False(t, dt.AppliesTo(""))
}

func TestDocumentTypeValidateRequiresCategories(t *testing.T) {
	dt := DocumentType{Name: "ISO 9001"}
	assert.Error(t, dt.Validate())

	dt.ApplicableCategories = StringArray{"Manufacturing"}
	assert.NoError(t, dt.Validate())
}

func TestStringArrayContains(t *testing.T) {
	arr := StringArray{"a", "b"}
	assert.True(t, arr.Contains("a"))
	assert.False(t, arr.Contains("c"))
	assert.False(t, StringArray(nil).Contains("a"))
}
