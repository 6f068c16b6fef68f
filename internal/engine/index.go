package engine

import (
	"errors"
	"fmt"
	"sync"

	"github.com/limaJavier/sectioning/internal/catalog"
	"github.com/samber/lo"
)

// ErrInvariantViolation signals a defect in the engine itself (negative
// occupancy, double-booking). It aborts the solve rather than produce a
// corrupted schedule.
var ErrInvariantViolation = errors.New("internal invariant violation")

type blockKey struct {
	owner string
	block catalog.Block
}

// ConstraintIndex holds the derived lookup structures of one solve:
// per-block room and teacher holders, per-section occupancy, per-student
// held blocks and completed courses, and section bindings. Every mutation
// goes through Bind/Unbind/Commit/Release, each applied as one atomic step
// under a single mutex, so a partial update is never observable.
type ConstraintIndex struct {
	mu      sync.Mutex
	catalog *catalog.Catalog

	occupancy     map[string]int
	roomHolder    map[blockKey]string
	teacherHolder map[blockKey]string
	studentBlocks map[string]map[catalog.Block]string
	bindings      map[string]Binding
	roomBlocks    map[string]int
	teacherBlocks map[string]int
	completed     map[string]map[string]bool
}

// NewConstraintIndex builds the index from a catalog, seeding it with the
// sections' preassigned bindings. Colliding preassignments are an input
// defect and fail with ErrMalformedCatalog.
func NewConstraintIndex(cat *catalog.Catalog) (*ConstraintIndex, error) {
	index := &ConstraintIndex{
		catalog:       cat,
		occupancy:     make(map[string]int),
		roomHolder:    make(map[blockKey]string),
		teacherHolder: make(map[blockKey]string),
		studentBlocks: make(map[string]map[catalog.Block]string),
		bindings:      make(map[string]Binding),
		roomBlocks:    make(map[string]int),
		teacherBlocks: make(map[string]int),
		completed:     make(map[string]map[string]bool),
	}

	for _, section := range cat.Sections() {
		if section.Room == "" && section.Teacher == "" {
			continue
		}

		if section.Room != "" {
			key := blockKey{section.Room, section.Block}
			if holder, ok := index.roomHolder[key]; ok {
				return nil, fmt.Errorf("%w: sections %q and %q preassigned to room %q in block %q", catalog.ErrMalformedCatalog, holder, section.Id, section.Room, section.Block)
			}
			index.roomHolder[key] = section.Id
			index.roomBlocks[section.Room]++
		}
		if section.Teacher != "" {
			key := blockKey{section.Teacher, section.Block}
			if holder, ok := index.teacherHolder[key]; ok {
				return nil, fmt.Errorf("%w: sections %q and %q preassigned to teacher %q in block %q", catalog.ErrMalformedCatalog, holder, section.Id, section.Teacher, section.Block)
			}
			teacher, _ := cat.Teacher(section.Teacher)
			if index.teacherBlocks[section.Teacher]+1 > teacher.MaxBlocks {
				return nil, fmt.Errorf("%w: preassignments exceed max blocks of teacher %q", catalog.ErrMalformedCatalog, section.Teacher)
			}
			index.teacherHolder[key] = section.Id
			index.teacherBlocks[section.Teacher]++
		}

		index.bindings[section.Id] = Binding{Room: section.Room, Teacher: section.Teacher}
	}

	// Completed-course sets may be spread over several requests of the same student
	for _, request := range cat.Requests() {
		if _, ok := index.completed[request.Student]; !ok {
			index.completed[request.Student] = make(map[string]bool)
		}
		for _, course := range request.Completed {
			index.completed[request.Student][course] = true
		}
	}

	return index, nil
}

// BlockOccupancy returns the room and teacher holders of a block as
// room → section and teacher → section maps
func (index *ConstraintIndex) BlockOccupancy(block catalog.Block) (rooms map[string]string, teachers map[string]string) {
	index.mu.Lock()
	defer index.mu.Unlock()

	rooms = make(map[string]string)
	teachers = make(map[string]string)
	for key, section := range index.roomHolder {
		if key.block == block {
			rooms[key.owner] = section
		}
	}
	for key, section := range index.teacherHolder {
		if key.block == block {
			teachers[key.owner] = section
		}
	}
	return rooms, teachers
}

// TeacherLoad checks whether the teacher is already committed in the block
func (index *ConstraintIndex) TeacherLoad(teacherId string, block catalog.Block) bool {
	index.mu.Lock()
	defer index.mu.Unlock()
	_, ok := index.teacherHolder[blockKey{teacherId, block}]
	return ok
}

// RoomLoad checks whether the room is already committed in the block
func (index *ConstraintIndex) RoomLoad(roomId string, block catalog.Block) bool {
	index.mu.Lock()
	defer index.mu.Unlock()
	_, ok := index.roomHolder[blockKey{roomId, block}]
	return ok
}

// StudentBlocks returns the blocks the student currently holds as a
// block → section map
func (index *ConstraintIndex) StudentBlocks(studentId string) map[catalog.Block]string {
	index.mu.Lock()
	defer index.mu.Unlock()

	blocks := make(map[catalog.Block]string, len(index.studentBlocks[studentId]))
	for block, section := range index.studentBlocks[studentId] {
		blocks[block] = section
	}
	return blocks
}

// PrerequisitesSatisfied checks the student's completed-course set against
// the course's prerequisite set
func (index *ConstraintIndex) PrerequisitesSatisfied(studentId, courseId string) bool {
	index.mu.Lock()
	defer index.mu.Unlock()

	course, ok := index.catalog.Course(courseId)
	if !ok {
		panic(fmt.Sprintf("course not found: %v", courseId))
	}
	return lo.EveryBy(course.Prerequisites, func(prerequisite string) bool {
		return index.completed[studentId][prerequisite]
	})
}

// Occupancy returns the number of students committed to the section
func (index *ConstraintIndex) Occupancy(sectionId string) int {
	index.mu.Lock()
	defer index.mu.Unlock()
	return index.occupancy[sectionId]
}

// Binding returns the section's current room/teacher binding, if any
func (index *ConstraintIndex) Binding(sectionId string) (Binding, bool) {
	index.mu.Lock()
	defer index.mu.Unlock()
	binding, ok := index.bindings[sectionId]
	return binding, ok
}

// RoomBoundBlocks returns how many blocks the room is bound in
func (index *ConstraintIndex) RoomBoundBlocks(roomId string) int {
	index.mu.Lock()
	defer index.mu.Unlock()
	return index.roomBlocks[roomId]
}

// TeacherBoundBlocks returns how many blocks the teacher is bound in
func (index *ConstraintIndex) TeacherBoundBlocks(teacherId string) int {
	index.mu.Lock()
	defer index.mu.Unlock()
	return index.teacherBlocks[teacherId]
}

// Bind reserves a room and a teacher for the section's block. A partial
// preassignment may only be completed, never overwritten. The reservation is
// all-or-nothing: on any conflict nothing is recorded.
func (index *ConstraintIndex) Bind(section catalog.Section, roomId, teacherId string) error {
	index.mu.Lock()
	defer index.mu.Unlock()

	if roomId == "" || teacherId == "" {
		return fmt.Errorf("%w: incomplete binding for section %q", ErrInvariantViolation, section.Id)
	}
	existing := index.bindings[section.Id]
	if existing.Room != "" && existing.Room != roomId {
		return fmt.Errorf("%w: section %q is already bound to room %q", ErrInvariantViolation, section.Id, existing.Room)
	}
	if existing.Teacher != "" && existing.Teacher != teacherId {
		return fmt.Errorf("%w: section %q is already bound to teacher %q", ErrInvariantViolation, section.Id, existing.Teacher)
	}

	roomKey := blockKey{roomId, section.Block}
	teacherKey := blockKey{teacherId, section.Block}
	if holder, ok := index.roomHolder[roomKey]; existing.Room == "" && ok {
		return fmt.Errorf("%w: room %q already held by section %q in block %q", ErrInvariantViolation, roomId, holder, section.Block)
	}
	if holder, ok := index.teacherHolder[teacherKey]; existing.Teacher == "" && ok {
		return fmt.Errorf("%w: teacher %q already held by section %q in block %q", ErrInvariantViolation, teacherId, holder, section.Block)
	}

	if existing.Room == "" {
		index.roomHolder[roomKey] = section.Id
		index.roomBlocks[roomId]++
	}
	if existing.Teacher == "" {
		index.teacherHolder[teacherKey] = section.Id
		index.teacherBlocks[teacherId]++
	}
	index.bindings[section.Id] = Binding{Room: roomId, Teacher: teacherId}
	return nil
}

// Unbind reverts an occupant-free section to its catalog preassignment,
// releasing whatever the engine added on top. Used by the engine's local
// backtrack when a tentative binding turns out unused.
func (index *ConstraintIndex) Unbind(sectionId string) error {
	index.mu.Lock()
	defer index.mu.Unlock()

	binding, ok := index.bindings[sectionId]
	if !ok {
		return fmt.Errorf("%w: section %q is not bound", ErrInvariantViolation, sectionId)
	}
	if index.occupancy[sectionId] > 0 {
		return fmt.Errorf("%w: cannot unbind occupied section %q", ErrInvariantViolation, sectionId)
	}

	section, ok := index.catalog.Section(sectionId)
	if !ok {
		panic(fmt.Sprintf("section not found: %v", sectionId))
	}

	if binding.Room != section.Room {
		delete(index.roomHolder, blockKey{binding.Room, section.Block})
		index.roomBlocks[binding.Room]--
	}
	if binding.Teacher != section.Teacher {
		delete(index.teacherHolder, blockKey{binding.Teacher, section.Block})
		index.teacherBlocks[binding.Teacher]--
	}
	if section.Room == "" && section.Teacher == "" {
		delete(index.bindings, sectionId)
	} else {
		index.bindings[sectionId] = Binding{Room: section.Room, Teacher: section.Teacher}
	}
	return nil
}

// Commit applies one assignment atomically: occupancy, the student's held
// blocks and the holder maps all move together or not at all.
func (index *ConstraintIndex) Commit(assignment Assignment) error {
	index.mu.Lock()
	defer index.mu.Unlock()

	section, ok := index.catalog.Section(assignment.Section)
	if !ok {
		return fmt.Errorf("%w: commit to unknown section %q", ErrInvariantViolation, assignment.Section)
	}
	binding, ok := index.bindings[assignment.Section]
	if !ok || binding.Room != assignment.Room || binding.Teacher != assignment.Teacher {
		return fmt.Errorf("%w: commit to section %q does not match its binding", ErrInvariantViolation, assignment.Section)
	}
	if index.occupancy[assignment.Section] >= section.Capacity {
		return fmt.Errorf("%w: section %q is full", ErrInvariantViolation, assignment.Section)
	}
	if held, ok := index.studentBlocks[assignment.Student][section.Block]; ok {
		return fmt.Errorf("%w: student %q already holds section %q in block %q", ErrInvariantViolation, assignment.Student, held, section.Block)
	}

	if _, ok := index.studentBlocks[assignment.Student]; !ok {
		index.studentBlocks[assignment.Student] = make(map[catalog.Block]string)
	}
	index.studentBlocks[assignment.Student][section.Block] = assignment.Section
	index.occupancy[assignment.Section]++
	return nil
}

// Release undoes one committed assignment atomically
func (index *ConstraintIndex) Release(assignment Assignment) error {
	index.mu.Lock()
	defer index.mu.Unlock()

	section, ok := index.catalog.Section(assignment.Section)
	if !ok {
		return fmt.Errorf("%w: release of unknown section %q", ErrInvariantViolation, assignment.Section)
	}
	if index.occupancy[assignment.Section] <= 0 {
		return fmt.Errorf("%w: occupancy of section %q would turn negative", ErrInvariantViolation, assignment.Section)
	}
	if index.studentBlocks[assignment.Student][section.Block] != assignment.Section {
		return fmt.Errorf("%w: student %q does not hold section %q", ErrInvariantViolation, assignment.Student, assignment.Section)
	}

	delete(index.studentBlocks[assignment.Student], section.Block)
	index.occupancy[assignment.Section]--
	return nil
}

// Bindings returns a copy of the current section bindings
func (index *ConstraintIndex) Bindings() map[string]Binding {
	index.mu.Lock()
	defer index.mu.Unlock()

	bindings := make(map[string]Binding, len(index.bindings))
	for section, binding := range index.bindings {
		bindings[section] = binding
	}
	return bindings
}
