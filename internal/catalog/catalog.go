package catalog

import (
	"errors"
	"fmt"
	"slices"

	"github.com/samber/lo"
)

// ErrMalformedCatalog signals a referential-integrity or range violation in
// the input dataset. The catalog never attempts repair.
var ErrMalformedCatalog = errors.New("malformed catalog")

// DefaultMaxBlocks is the workload ceiling applied to teachers whose record
// omits one.
const DefaultMaxBlocks = 5

// Block is a discrete scheduling time slot (e.g. "1A", "3B").
type Block string

type Teacher struct {
	Id        string
	Courses   []string
	MaxBlocks int
}

// Qualified checks whether the teacher may teach the course
func (teacher Teacher) Qualified(course string) bool {
	return slices.Contains(teacher.Courses, course)
}

type Room struct {
	Id        string
	Capacity  int
	Equipment []string
}

// Equipped checks whether the room provides every required piece of equipment
func (room Room) Equipped(required []string) bool {
	return lo.Every(room.Equipment, required)
}

type Course struct {
	Id            string
	Prerequisites []string
}

// Section is one offering of a course in one block. Room and Teacher are
// optional preassignments; empty means unbound until the engine binds them.
type Section struct {
	Id        string
	Course    string
	Block     Block
	Capacity  int
	Equipment []string
	Room      string
	Teacher   string
}

type StudentRequest struct {
	Student   string
	Course    string
	Priority  Priority
	Completed []string
}

// Catalog is the validated, typed view of one dataset. It is immutable for
// the lifetime of a solve.
type Catalog struct {
	teachers map[string]Teacher
	rooms    map[string]Room
	courses  map[string]Course
	sections map[string]Section
	requests []StudentRequest

	teacherIds []string
	roomIds    []string
	courseIds  []string
	sectionIds []string

	courseSections map[string][]string
}

// NewCatalog validates the dataset and builds the catalog. It fails with an
// error wrapping ErrMalformedCatalog on the first referential or range
// violation found.
func NewCatalog(dataset Dataset) (*Catalog, error) {
	catalog := &Catalog{
		teachers:       make(map[string]Teacher),
		rooms:          make(map[string]Room),
		courses:        make(map[string]Course),
		sections:       make(map[string]Section),
		courseSections: make(map[string][]string),
	}

	//** Courses
	for _, record := range dataset.Courses {
		if record.Id == "" {
			return nil, fmt.Errorf("%w: course with empty id", ErrMalformedCatalog)
		} else if _, ok := catalog.courses[record.Id]; ok {
			return nil, fmt.Errorf("%w: duplicate course %q", ErrMalformedCatalog, record.Id)
		}
		catalog.courses[record.Id] = Course{Id: record.Id, Prerequisites: record.Prerequisites}
		catalog.courseIds = append(catalog.courseIds, record.Id)
	}
	for _, course := range catalog.courses {
		for _, prerequisite := range course.Prerequisites {
			if _, ok := catalog.courses[prerequisite]; !ok {
				return nil, fmt.Errorf("%w: course %q requires unknown course %q", ErrMalformedCatalog, course.Id, prerequisite)
			}
		}
	}

	//** Rooms
	for _, record := range dataset.Rooms {
		if record.Id == "" {
			return nil, fmt.Errorf("%w: room with empty id", ErrMalformedCatalog)
		} else if _, ok := catalog.rooms[record.Id]; ok {
			return nil, fmt.Errorf("%w: duplicate room %q", ErrMalformedCatalog, record.Id)
		} else if record.Capacity < 0 {
			return nil, fmt.Errorf("%w: room %q has negative capacity", ErrMalformedCatalog, record.Id)
		}
		catalog.rooms[record.Id] = Room{Id: record.Id, Capacity: record.Capacity, Equipment: record.Equipment}
		catalog.roomIds = append(catalog.roomIds, record.Id)
	}

	//** Teachers
	for _, record := range dataset.Teachers {
		if record.Id == "" {
			return nil, fmt.Errorf("%w: teacher with empty id", ErrMalformedCatalog)
		} else if _, ok := catalog.teachers[record.Id]; ok {
			return nil, fmt.Errorf("%w: duplicate teacher %q", ErrMalformedCatalog, record.Id)
		} else if len(record.Courses) == 0 {
			return nil, fmt.Errorf("%w: teacher %q has no qualified courses", ErrMalformedCatalog, record.Id)
		} else if record.MaxBlocks < 0 {
			return nil, fmt.Errorf("%w: teacher %q has negative max blocks", ErrMalformedCatalog, record.Id)
		}
		for _, course := range record.Courses {
			if _, ok := catalog.courses[course]; !ok {
				return nil, fmt.Errorf("%w: teacher %q qualified for unknown course %q", ErrMalformedCatalog, record.Id, course)
			}
		}

		maxBlocks := record.MaxBlocks
		if maxBlocks == 0 {
			maxBlocks = DefaultMaxBlocks
		}
		catalog.teachers[record.Id] = Teacher{Id: record.Id, Courses: record.Courses, MaxBlocks: maxBlocks}
		catalog.teacherIds = append(catalog.teacherIds, record.Id)
	}

	//** Sections
	for _, record := range dataset.Sections {
		if record.Id == "" {
			return nil, fmt.Errorf("%w: section with empty id", ErrMalformedCatalog)
		} else if _, ok := catalog.sections[record.Id]; ok {
			return nil, fmt.Errorf("%w: duplicate section %q", ErrMalformedCatalog, record.Id)
		} else if record.Capacity < 0 {
			return nil, fmt.Errorf("%w: section %q has negative capacity", ErrMalformedCatalog, record.Id)
		} else if record.Block == "" {
			return nil, fmt.Errorf("%w: section %q has no block", ErrMalformedCatalog, record.Id)
		}

		if _, ok := catalog.courses[record.Course]; !ok {
			return nil, fmt.Errorf("%w: section %q offers unknown course %q", ErrMalformedCatalog, record.Id, record.Course)
		}

		// Preassigned bindings must reference known entities and hold the section invariants upfront
		if record.Room != "" {
			room, ok := catalog.rooms[record.Room]
			if !ok {
				return nil, fmt.Errorf("%w: section %q preassigned to unknown room %q", ErrMalformedCatalog, record.Id, record.Room)
			} else if room.Capacity < record.Capacity {
				return nil, fmt.Errorf("%w: section %q does not fit in room %q", ErrMalformedCatalog, record.Id, record.Room)
			} else if !room.Equipped(record.Equipment) {
				return nil, fmt.Errorf("%w: room %q lacks equipment required by section %q", ErrMalformedCatalog, record.Room, record.Id)
			}
		}
		if record.Teacher != "" {
			teacher, ok := catalog.teachers[record.Teacher]
			if !ok {
				return nil, fmt.Errorf("%w: section %q preassigned to unknown teacher %q", ErrMalformedCatalog, record.Id, record.Teacher)
			} else if !teacher.Qualified(record.Course) {
				return nil, fmt.Errorf("%w: teacher %q is not qualified for course %q of section %q", ErrMalformedCatalog, record.Teacher, record.Course, record.Id)
			}
		}

		catalog.sections[record.Id] = Section{
			Id:        record.Id,
			Course:    record.Course,
			Block:     Block(record.Block),
			Capacity:  record.Capacity,
			Equipment: record.Equipment,
			Room:      record.Room,
			Teacher:   record.Teacher,
		}
		catalog.sectionIds = append(catalog.sectionIds, record.Id)
		catalog.courseSections[record.Course] = append(catalog.courseSections[record.Course], record.Id)
	}

	//** Requests
	for _, record := range dataset.Requests {
		if record.Student == "" {
			return nil, fmt.Errorf("%w: request with empty student id", ErrMalformedCatalog)
		}
		if _, ok := catalog.courses[record.Course]; !ok {
			return nil, fmt.Errorf("%w: student %q requests unknown course %q", ErrMalformedCatalog, record.Student, record.Course)
		}
		priority, err := ParsePriority(record.Priority)
		if err != nil {
			return nil, fmt.Errorf("%w: request of student %q: %v", ErrMalformedCatalog, record.Student, err)
		}
		catalog.requests = append(catalog.requests, StudentRequest{
			Student:   record.Student,
			Course:    record.Course,
			Priority:  priority,
			Completed: record.Completed,
		})
	}

	slices.Sort(catalog.teacherIds)
	slices.Sort(catalog.roomIds)
	slices.Sort(catalog.courseIds)
	slices.Sort(catalog.sectionIds)
	for _, sections := range catalog.courseSections {
		slices.Sort(sections)
	}

	return catalog, nil
}

func (catalog *Catalog) Teacher(id string) (Teacher, bool) {
	teacher, ok := catalog.teachers[id]
	return teacher, ok
}

func (catalog *Catalog) Room(id string) (Room, bool) {
	room, ok := catalog.rooms[id]
	return room, ok
}

func (catalog *Catalog) Course(id string) (Course, bool) {
	course, ok := catalog.courses[id]
	return course, ok
}

func (catalog *Catalog) Section(id string) (Section, bool) {
	section, ok := catalog.sections[id]
	return section, ok
}

// Teachers returns all teachers in ascending id order
func (catalog *Catalog) Teachers() []Teacher {
	return lo.Map(catalog.teacherIds, func(id string, _ int) Teacher { return catalog.teachers[id] })
}

// Rooms returns all rooms in ascending id order
func (catalog *Catalog) Rooms() []Room {
	return lo.Map(catalog.roomIds, func(id string, _ int) Room { return catalog.rooms[id] })
}

// Courses returns all courses in ascending id order
func (catalog *Catalog) Courses() []Course {
	return lo.Map(catalog.courseIds, func(id string, _ int) Course { return catalog.courses[id] })
}

// Sections returns all sections in ascending id order
func (catalog *Catalog) Sections() []Section {
	return lo.Map(catalog.sectionIds, func(id string, _ int) Section { return catalog.sections[id] })
}

// SectionsOf returns the sections offering a course in ascending id order
func (catalog *Catalog) SectionsOf(course string) []Section {
	return lo.Map(catalog.courseSections[course], func(id string, _ int) Section { return catalog.sections[id] })
}

// Requests returns the student requests in dataset order
func (catalog *Catalog) Requests() []StudentRequest {
	return slices.Clone(catalog.requests)
}
