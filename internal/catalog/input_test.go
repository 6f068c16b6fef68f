package catalog

import (
	"os"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDatasetFromJson(t *testing.T) {
	t.Run("Cleaned dataset", func(t *testing.T) {
		// Arrange
		content := `{
			"teachers": [{"id": "T1", "courses": ["MATH101"], "maxBlocks": 4}],
			"rooms": [{"id": "R1", "capacity": 30, "equipment": ["projector"]}],
			"courses": [{"id": "MATH101"}, {"id": "MATH201", "prerequisites": ["MATH101"]}],
			"sections": [{"id": "MATH101-1", "course": "MATH101", "block": "1A", "capacity": 25, "room": "R1"}],
			"requests": [{"student": "S1", "course": "MATH101", "priority": "Core course", "completed": []}]
		}`
		file := path.Join(t.TempDir(), "dataset.json")
		assert.Nil(t, os.WriteFile(file, []byte(content), 0666))

		// Act
		dataset, err := DatasetFromJson(file)

		// Assert
		assert.Nil(t, err)
		assert.Len(t, dataset.Teachers, 1)
		assert.Equal(t, 4, dataset.Teachers[0].MaxBlocks)
		assert.Equal(t, []string{"projector"}, dataset.Rooms[0].Equipment)
		assert.Equal(t, []string{"MATH101"}, dataset.Courses[1].Prerequisites)
		assert.Equal(t, "R1", dataset.Sections[0].Room)
		assert.Equal(t, "Core course", dataset.Requests[0].Priority)
	})

	t.Run("Missing file", func(t *testing.T) {
		// Act
		_, err := DatasetFromJson(path.Join(t.TempDir(), "missing.json"))

		// Assert
		assert.NotNil(t, err)
	})

	t.Run("Invalid json", func(t *testing.T) {
		// Arrange
		file := path.Join(t.TempDir(), "dataset.json")
		assert.Nil(t, os.WriteFile(file, []byte("{"), 0666))

		// Act
		_, err := DatasetFromJson(file)

		// Assert
		assert.NotNil(t, err)
	})
}
