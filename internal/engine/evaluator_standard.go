package engine

import (
	"github.com/limaJavier/sectioning/internal/catalog"
)

type standardEvaluator struct {
	catalog *catalog.Catalog
	index   *ConstraintIndex
}

func (evaluator *standardEvaluator) HasCapacity(section catalog.Section) bool {
	return evaluator.index.Occupancy(section.Id) < section.Capacity
}

func (evaluator *standardEvaluator) Fits(section catalog.Section, room catalog.Room) bool {
	return room.Capacity >= section.Capacity
}

func (evaluator *standardEvaluator) Equipped(section catalog.Section, room catalog.Room) bool {
	return room.Equipped(section.Equipment)
}

func (evaluator *standardEvaluator) Conflicts(student string, block catalog.Block) bool {
	_, held := evaluator.index.StudentBlocks(student)[block]
	return held
}

func (evaluator *standardEvaluator) Overloaded(teacher catalog.Teacher) bool {
	return evaluator.index.TeacherBoundBlocks(teacher.Id) >= teacher.MaxBlocks
}

func (evaluator *standardEvaluator) PrerequisitesSatisfied(student, course string) bool {
	return evaluator.index.PrerequisitesSatisfied(student, course)
}
