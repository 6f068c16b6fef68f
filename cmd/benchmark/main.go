package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/limaJavier/sectioning/internal/catalog"
	"github.com/limaJavier/sectioning/internal/engine"
	"github.com/samber/lo"
)

const seed = 42

var (
	blocks     = []string{"1A", "1B", "2A", "2B", "3A", "3B", "4A", "4B"}
	equipment  = []string{"projector", "lab", "piano"}
	priorities = []string{"Core course", "Required", "Requested", "Recommended"}
	cohorts    = []int{100, 250, 500, 1000, 2000}
)

func main() {
	outFilePathPtr := flag.String("out", "", "Path to the file where the results will be written; if empty, they'll be written into the Standard Output")
	flag.Parse()

	records := [][]string{
		{"students", "requests", "satisfied", "rate", "duration_ms"},
	}

	for _, students := range cohorts {
		dataset := syntheticDataset(rand.New(rand.NewSource(seed)), students)

		cat, err := catalog.NewCatalog(dataset)
		if err != nil {
			log.Fatalf("cannot build catalog: %v", err)
		}

		scheduler := engine.NewScheduler(engine.DefaultPolicy(), nil)

		start := time.Now()
		schedule, err := scheduler.Build(cat)
		duration := time.Since(start)
		if err != nil {
			log.Fatalf("an error occurred during schedule construction: %v", err)
		}
		if !scheduler.Verify(schedule, cat) {
			log.Fatalf("schedule verification failed for %v students", students)
		}

		requests := len(schedule.Assignments) + len(schedule.Unassigned)
		rate := float64(len(schedule.Assignments)) / float64(requests)
		records = append(records, []string{
			strconv.Itoa(students),
			strconv.Itoa(requests),
			strconv.Itoa(len(schedule.Assignments)),
			fmt.Sprintf("%.4f", rate),
			strconv.FormatInt(duration.Milliseconds(), 10),
		})
	}

	out := os.Stdout
	if *outFilePathPtr != "" {
		file, err := os.Create(*outFilePathPtr)
		if err != nil {
			log.Fatalf("cannot create output file: %v", err)
		}
		defer file.Close()
		out = file
	}

	writer := csv.NewWriter(out)
	if err := writer.WriteAll(records); err != nil {
		log.Fatalf("cannot write results: %v", err)
	}
}

// syntheticDataset builds a deterministic random catalog sized to the cohort
func syntheticDataset(rng *rand.Rand, students int) catalog.Dataset {
	totalCourses := max(10, students/20)
	totalTeachers := max(5, totalCourses/2)
	totalRooms := max(8, students/25)

	courses := make([]catalog.CourseRecord, totalCourses)
	for i := range courses {
		courses[i] = catalog.CourseRecord{Id: fmt.Sprintf("C%03d", i)}
		// A tenth of the courses require an earlier one
		if i > 0 && rng.Intn(10) == 0 {
			courses[i].Prerequisites = []string{fmt.Sprintf("C%03d", rng.Intn(i))}
		}
	}

	teachers := make([]catalog.TeacherRecord, totalTeachers)
	for i := range teachers {
		teachers[i] = catalog.TeacherRecord{Id: fmt.Sprintf("T%03d", i)}
	}
	// Every course gets at least one qualified teacher
	for i := range courses {
		teacher := &teachers[i%totalTeachers]
		teacher.Courses = append(teacher.Courses, courses[i].Id)
	}
	for i := range teachers {
		if extra := rng.Intn(3); extra > 0 {
			for j := 0; j < extra; j++ {
				course := courses[rng.Intn(totalCourses)].Id
				if !lo.Contains(teachers[i].Courses, course) {
					teachers[i].Courses = append(teachers[i].Courses, course)
				}
			}
		}
	}

	rooms := make([]catalog.RoomRecord, totalRooms)
	for i := range rooms {
		rooms[i] = catalog.RoomRecord{
			Id:       fmt.Sprintf("R%03d", i),
			Capacity: 20 + rng.Intn(21),
		}
		if rng.Intn(3) == 0 {
			rooms[i].Equipment = []string{equipment[rng.Intn(len(equipment))]}
		}
	}

	sections := make([]catalog.SectionRecord, 0, totalCourses*2)
	for i, course := range courses {
		for section, sectionCount := 0, 1+rng.Intn(3); section < sectionCount; section++ {
			record := catalog.SectionRecord{
				Id:       fmt.Sprintf("S%03d-%d", i, section),
				Course:   course.Id,
				Block:    blocks[rng.Intn(len(blocks))],
				Capacity: 20 + rng.Intn(11),
			}
			if rng.Intn(10) == 0 {
				record.Equipment = []string{equipment[rng.Intn(len(equipment))]}
			}
			sections = append(sections, record)
		}
	}

	requests := make([]catalog.RequestRecord, 0, students*4)
	for student := 0; student < students; student++ {
		requested := rng.Perm(totalCourses)[:4]
		for _, course := range requested {
			record := catalog.RequestRecord{
				Student:  fmt.Sprintf("ST%05d", student),
				Course:   courses[course].Id,
				Priority: priorities[rng.Intn(len(priorities))],
			}
			// Most students completed the prerequisites of what they request
			for _, prerequisite := range courses[course].Prerequisites {
				if rng.Intn(10) < 7 {
					record.Completed = append(record.Completed, prerequisite)
				}
			}
			requests = append(requests, record)
		}
	}

	return catalog.Dataset{
		Teachers: teachers,
		Rooms:    rooms,
		Courses:  courses,
		Sections: sections,
		Requests: requests,
	}
}
