package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validDataset() Dataset {
	return Dataset{
		Courses: []CourseRecord{
			{Id: "MATH101"},
			{Id: "MATH201", Prerequisites: []string{"MATH101"}},
			{Id: "MUS110"},
		},
		Teachers: []TeacherRecord{
			{Id: "T1", Courses: []string{"MATH101", "MATH201"}},
			{Id: "T2", Courses: []string{"MUS110"}, MaxBlocks: 3},
		},
		Rooms: []RoomRecord{
			{Id: "R1", Capacity: 30},
			{Id: "R2", Capacity: 20, Equipment: []string{"piano"}},
		},
		Sections: []SectionRecord{
			{Id: "MATH101-1", Course: "MATH101", Block: "1A", Capacity: 30},
			{Id: "MATH201-1", Course: "MATH201", Block: "2A", Capacity: 25},
			{Id: "MUS110-1", Course: "MUS110", Block: "1A", Capacity: 15, Equipment: []string{"piano"}},
		},
		Requests: []RequestRecord{
			{Student: "S1", Course: "MATH101", Priority: "Core course"},
			{Student: "S2", Course: "MUS110", Priority: "Requested"},
		},
	}
}

func TestNewCatalog(t *testing.T) {
	t.Run("Valid dataset", func(t *testing.T) {
		// Act
		catalog, err := NewCatalog(validDataset())

		// Assert
		assert.Nil(t, err)
		assert.NotNil(t, catalog)
		assert.Len(t, catalog.Teachers(), 2)
		assert.Len(t, catalog.Rooms(), 2)
		assert.Len(t, catalog.Courses(), 3)
		assert.Len(t, catalog.Sections(), 3)
		assert.Len(t, catalog.Requests(), 2)
	})

	t.Run("Default max blocks", func(t *testing.T) {
		// Act
		catalog, err := NewCatalog(validDataset())

		// Assert
		assert.Nil(t, err)
		teacher, ok := catalog.Teacher("T1")
		assert.True(t, ok)
		assert.Equal(t, DefaultMaxBlocks, teacher.MaxBlocks)

		teacher, ok = catalog.Teacher("T2")
		assert.True(t, ok)
		assert.Equal(t, 3, teacher.MaxBlocks)
	})

	t.Run("Section with unknown course", func(t *testing.T) {
		// Arrange
		dataset := validDataset()
		dataset.Sections = append(dataset.Sections, SectionRecord{Id: "GHOST-1", Course: "GHOST", Block: "1A", Capacity: 10})

		// Act
		_, err := NewCatalog(dataset)

		// Assert
		assert.ErrorIs(t, err, ErrMalformedCatalog)
	})

	t.Run("Negative capacities", func(t *testing.T) {
		// Arrange
		roomDataset := validDataset()
		roomDataset.Rooms[0].Capacity = -1
		sectionDataset := validDataset()
		sectionDataset.Sections[0].Capacity = -5

		// Act & Assert
		_, err := NewCatalog(roomDataset)
		assert.ErrorIs(t, err, ErrMalformedCatalog)
		_, err = NewCatalog(sectionDataset)
		assert.ErrorIs(t, err, ErrMalformedCatalog)
	})

	t.Run("Teacher without qualifications", func(t *testing.T) {
		// Arrange
		dataset := validDataset()
		dataset.Teachers[0].Courses = nil

		// Act
		_, err := NewCatalog(dataset)

		// Assert
		assert.ErrorIs(t, err, ErrMalformedCatalog)
	})

	t.Run("Request with unknown course", func(t *testing.T) {
		// Arrange
		dataset := validDataset()
		dataset.Requests[0].Course = "GHOST"

		// Act
		_, err := NewCatalog(dataset)

		// Assert
		assert.ErrorIs(t, err, ErrMalformedCatalog)
	})

	t.Run("Request with invalid priority", func(t *testing.T) {
		// Arrange
		dataset := validDataset()
		dataset.Requests[0].Priority = "Urgent"

		// Act
		_, err := NewCatalog(dataset)

		// Assert
		assert.ErrorIs(t, err, ErrMalformedCatalog)
	})

	t.Run("Duplicate ids", func(t *testing.T) {
		// Arrange
		dataset := validDataset()
		dataset.Sections = append(dataset.Sections, dataset.Sections[0])

		// Act
		_, err := NewCatalog(dataset)

		// Assert
		assert.ErrorIs(t, err, ErrMalformedCatalog)
	})

	t.Run("Unknown prerequisite", func(t *testing.T) {
		// Arrange
		dataset := validDataset()
		dataset.Courses[1].Prerequisites = []string{"GHOST"}

		// Act
		_, err := NewCatalog(dataset)

		// Assert
		assert.ErrorIs(t, err, ErrMalformedCatalog)
	})

	t.Run("Preassignment violating room capacity", func(t *testing.T) {
		// Arrange
		dataset := validDataset()
		dataset.Sections[0].Room = "R2" // capacity 20 < section capacity 30

		// Act
		_, err := NewCatalog(dataset)

		// Assert
		assert.ErrorIs(t, err, ErrMalformedCatalog)
	})

	t.Run("Preassignment to unqualified teacher", func(t *testing.T) {
		// Arrange
		dataset := validDataset()
		dataset.Sections[0].Teacher = "T2"

		// Act
		_, err := NewCatalog(dataset)

		// Assert
		assert.ErrorIs(t, err, ErrMalformedCatalog)
	})
}

func TestCatalogAccessors(t *testing.T) {
	// Arrange
	catalog, err := NewCatalog(validDataset())
	assert.Nil(t, err)

	t.Run("Sections are sorted by id", func(t *testing.T) {
		sections := catalog.Sections()
		assert.Equal(t, "MATH101-1", sections[0].Id)
		assert.Equal(t, "MATH201-1", sections[1].Id)
		assert.Equal(t, "MUS110-1", sections[2].Id)
	})

	t.Run("SectionsOf filters by course", func(t *testing.T) {
		sections := catalog.SectionsOf("MATH101")
		assert.Len(t, sections, 1)
		assert.Equal(t, "MATH101-1", sections[0].Id)
		assert.Empty(t, catalog.SectionsOf("GHOST"))
	})

	t.Run("Lookup by id", func(t *testing.T) {
		room, ok := catalog.Room("R2")
		assert.True(t, ok)
		assert.True(t, room.Equipped([]string{"piano"}))
		assert.False(t, room.Equipped([]string{"lab"}))

		_, ok = catalog.Room("GHOST")
		assert.False(t, ok)
	})

	t.Run("Requests are parsed", func(t *testing.T) {
		requests := catalog.Requests()
		assert.Equal(t, PriorityCore, requests[0].Priority)
		assert.Equal(t, PriorityRequested, requests[1].Priority)
	})
}
