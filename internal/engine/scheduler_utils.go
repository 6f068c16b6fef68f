package engine

import (
	"github.com/limaJavier/sectioning/internal/catalog"
	"github.com/samber/lo"
)

func (scheduler *greedyScheduler) Verify(schedule *Schedule, cat *catalog.Catalog) bool {
	return verify(schedule, cat)
}

// verify audits a finished schedule from scratch, independently of the
// index state the solve maintained: every outcome accounted exactly once,
// occupancies within capacity, no room, teacher or student holding two
// sections in one block, and every binding compatible with its section.
func verify(schedule *Schedule, cat *catalog.Catalog) bool {
	//** Initialize occupancy and holder maps
	occupancy := make(map[string]int)
	roomHolder := make(map[blockKey]string)
	teacherHolder := make(map[blockKey]string)
	studentHolder := make(map[blockKey]bool)

	//** Check bindings against their sections
	for sectionId, binding := range schedule.Bindings {
		section, ok := cat.Section(sectionId)
		if !ok {
			return false
		}

		if binding.Room != "" {
			room, ok := cat.Room(binding.Room)
			if !ok || room.Capacity < section.Capacity || !room.Equipped(section.Equipment) {
				return false
			}
			key := blockKey{binding.Room, section.Block}
			if _, held := roomHolder[key]; held {
				return false
			}
			roomHolder[key] = sectionId
		}
		if binding.Teacher != "" {
			teacher, ok := cat.Teacher(binding.Teacher)
			if !ok || !teacher.Qualified(section.Course) {
				return false
			}
			key := blockKey{binding.Teacher, section.Block}
			if _, held := teacherHolder[key]; held {
				return false
			}
			teacherHolder[key] = sectionId
		}
	}

	//** Check teacher workloads
	teacherLoads := lo.CountValuesBy(lo.Keys(teacherHolder), func(key blockKey) string {
		return key.owner
	})
	for teacherId, load := range teacherLoads {
		teacher, ok := cat.Teacher(teacherId)
		if !ok || load > teacher.MaxBlocks {
			return false
		}
	}

	//** Check assignments
	completed := make(map[string]map[string]bool)
	for _, request := range cat.Requests() {
		if _, ok := completed[request.Student]; !ok {
			completed[request.Student] = make(map[string]bool)
		}
		for _, course := range request.Completed {
			completed[request.Student][course] = true
		}
	}

	for _, assignment := range schedule.Assignments {
		section, ok := cat.Section(assignment.Section)
		if !ok || section.Course != assignment.Course || section.Block != assignment.Block {
			return false
		}

		// Assignment must match the section's final binding
		binding, ok := schedule.Bindings[assignment.Section]
		if !ok || binding.Room != assignment.Room || binding.Teacher != assignment.Teacher {
			return false
		}

		// Prerequisites must hold for the assigned student
		course, _ := cat.Course(assignment.Course)
		prerequisitesSatisfied := lo.EveryBy(course.Prerequisites, func(prerequisite string) bool {
			return completed[assignment.Student][prerequisite]
		})
		if !prerequisitesSatisfied {
			return false
		}

		// No student holds two sections in one block
		studentKey := blockKey{assignment.Student, section.Block}
		if studentHolder[studentKey] {
			return false
		}
		studentHolder[studentKey] = true

		occupancy[assignment.Section]++
	}

	//** Check occupancies against section capacities
	for sectionId, count := range occupancy {
		section, _ := cat.Section(sectionId)
		if count > section.Capacity {
			return false
		}
	}

	//** Check that every request produced exactly one outcome
	outcomes := make(map[[2]string]int)
	for _, assignment := range schedule.Assignments {
		outcomes[[2]string{assignment.Student, assignment.Course}]++
	}
	for _, unassigned := range schedule.Unassigned {
		outcomes[[2]string{unassigned.Student, unassigned.Course}]++
	}

	requested := make(map[[2]string]int)
	for _, request := range cat.Requests() {
		requested[[2]string{request.Student, request.Course}]++
	}

	return !lo.SomeBy(lo.Entries(requested), func(entry lo.Entry[[2]string, int]) bool {
		return outcomes[entry.Key] != entry.Value
	})
}
