package engine

import (
	"testing"

	"github.com/limaJavier/sectioning/internal/catalog"
	. "github.com/onsi/gomega"
)

func auditDataset() catalog.Dataset {
	return catalog.Dataset{
		Courses: []catalog.CourseRecord{
			{Id: "MATH101"},
			{Id: "MATH201", Prerequisites: []string{"MATH101"}},
		},
		Teachers: []catalog.TeacherRecord{
			{Id: "T1", Courses: []string{"MATH101", "MATH201"}},
		},
		Rooms: []catalog.RoomRecord{
			{Id: "R1", Capacity: 30},
			{Id: "R2", Capacity: 1},
		},
		Sections: []catalog.SectionRecord{
			{Id: "MATH101-1", Course: "MATH101", Block: "1A", Capacity: 2},
			{Id: "MATH201-1", Course: "MATH201", Block: "2A", Capacity: 2},
		},
		Requests: []catalog.RequestRecord{
			{Student: "S1", Course: "MATH101", Priority: "Core course"},
			{Student: "S2", Course: "MATH101", Priority: "Core course"},
		},
	}
}

func TestVerify(t *testing.T) {
	t.Run("Accepts a built schedule", func(t *testing.T) {
		// Arrange
		g := NewWithT(t)
		cat, err := catalog.NewCatalog(auditDataset())
		g.Expect(err).To(BeNil())
		scheduler := NewScheduler(DefaultPolicy(), nil)
		schedule, err := scheduler.Build(cat)
		g.Expect(err).To(BeNil())

		// Act & Assert
		g.Expect(scheduler.Verify(schedule, cat)).To(BeTrue())
	})

	t.Run("Rejects occupancy over capacity", func(t *testing.T) {
		// Arrange
		g := NewWithT(t)
		dataset := auditDataset()
		dataset.Requests = append(dataset.Requests, catalog.RequestRecord{Student: "S3", Course: "MATH101", Priority: "Core course"})
		cat, err := catalog.NewCatalog(dataset)
		g.Expect(err).To(BeNil())
		scheduler := NewScheduler(DefaultPolicy(), nil)
		schedule, err := scheduler.Build(cat)
		g.Expect(err).To(BeNil())

		// Act: force the rejected student into the full section
		schedule.Assignments = append(schedule.Assignments, Assignment{
			Student: "S3", Course: "MATH101", Section: "MATH101-1", Block: "1A", Room: "R1", Teacher: "T1",
		})
		schedule.Unassigned = nil

		// Assert
		g.Expect(scheduler.Verify(schedule, cat)).To(BeFalse())
	})

	t.Run("Rejects a double-booked student", func(t *testing.T) {
		// Arrange
		g := NewWithT(t)
		cat, err := catalog.NewCatalog(auditDataset())
		g.Expect(err).To(BeNil())
		scheduler := NewScheduler(DefaultPolicy(), nil)
		schedule, err := scheduler.Build(cat)
		g.Expect(err).To(BeNil())

		// Act: duplicate the first assignment under a different course outcome
		duplicated := schedule.Assignments[0]
		schedule.Assignments = append(schedule.Assignments, duplicated)

		// Assert
		g.Expect(scheduler.Verify(schedule, cat)).To(BeFalse())
	})

	t.Run("Rejects a binding into an unfitting room", func(t *testing.T) {
		// Arrange
		g := NewWithT(t)
		cat, err := catalog.NewCatalog(auditDataset())
		g.Expect(err).To(BeNil())
		scheduler := NewScheduler(DefaultPolicy(), nil)
		schedule, err := scheduler.Build(cat)
		g.Expect(err).To(BeNil())

		// Act: R2 is far too small for the section
		binding := schedule.Bindings["MATH101-1"]
		binding.Room = "R2"
		schedule.Bindings["MATH101-1"] = binding
		for i := range schedule.Assignments {
			schedule.Assignments[i].Room = "R2"
		}

		// Assert
		g.Expect(scheduler.Verify(schedule, cat)).To(BeFalse())
	})

	t.Run("Rejects a dropped outcome", func(t *testing.T) {
		// Arrange
		g := NewWithT(t)
		cat, err := catalog.NewCatalog(auditDataset())
		g.Expect(err).To(BeNil())
		scheduler := NewScheduler(DefaultPolicy(), nil)
		schedule, err := scheduler.Build(cat)
		g.Expect(err).To(BeNil())

		// Act: silently drop one satisfied request
		schedule.Assignments = schedule.Assignments[:1]

		// Assert
		g.Expect(scheduler.Verify(schedule, cat)).To(BeFalse())
	})

	t.Run("Accepts an empty schedule of an empty catalog", func(t *testing.T) {
		// Arrange
		g := NewWithT(t)
		dataset := auditDataset()
		dataset.Requests = nil
		cat, err := catalog.NewCatalog(dataset)
		g.Expect(err).To(BeNil())
		scheduler := NewScheduler(DefaultPolicy(), nil)
		schedule, err := scheduler.Build(cat)
		g.Expect(err).To(BeNil())

		// Act & Assert
		g.Expect(schedule.Assignments).To(BeEmpty())
		g.Expect(scheduler.Verify(schedule, cat)).To(BeTrue())
	})
}
