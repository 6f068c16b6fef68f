package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePriority(t *testing.T) {
	// Arrange
	labels := map[string]Priority{
		"Core course": PriorityCore,
		"Required":    PriorityRequired,
		"Requested":   PriorityRequested,
		"Recommended": PriorityRecommended,
	}

	// Act & Assert
	for label, expected := range labels {
		priority, err := ParsePriority(label)
		assert.Nil(t, err)
		assert.Equal(t, expected, priority)
		assert.Equal(t, label, priority.String())
	}

	_, err := ParsePriority("Urgent")
	assert.NotNil(t, err)
}

func TestPriorityOrdering(t *testing.T) {
	// The tier order is strict and fixed
	assert.Greater(t, PriorityCore, PriorityRequired)
	assert.Greater(t, PriorityRequired, PriorityRequested)
	assert.Greater(t, PriorityRequested, PriorityRecommended)

	assert.Equal(t, []Priority{PriorityCore, PriorityRequired, PriorityRequested, PriorityRecommended}, Priorities())
}
