package engine

import "github.com/limaJavier/sectioning/internal/catalog"

type FeasibilityEvaluator interface {
	// Checks whether the section still has a free seat
	HasCapacity(section catalog.Section) bool

	// Checks whether the section's capacity does not exceed the room's
	Fits(section catalog.Section, room catalog.Room) bool

	// Checks whether the room provides the section's required equipment
	Equipped(section catalog.Section, room catalog.Room) bool

	// Checks whether the student already holds a commitment in the block
	Conflicts(student string, block catalog.Block) bool

	// Checks whether the teacher may take one more block
	Overloaded(teacher catalog.Teacher) bool

	// Checks whether the student's completed courses cover the course's prerequisites
	PrerequisitesSatisfied(student, course string) bool
}

func NewFeasibilityEvaluator(cat *catalog.Catalog, index *ConstraintIndex) FeasibilityEvaluator {
	return &standardEvaluator{
		catalog: cat,
		index:   index,
	}
}
