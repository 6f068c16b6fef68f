package report

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/limaJavier/sectioning/internal/catalog"
	"github.com/limaJavier/sectioning/internal/engine"
	"github.com/samber/lo"
)

// Entry is one resolved line of a student's schedule
type Entry struct {
	Course  string
	Section string
	Block   catalog.Block
	Room    string
	Teacher string
}

type StudentSchedule struct {
	Student string
	Entries []Entry
}

type TierStats struct {
	Total     int
	Satisfied int
	Rate      float64
}

// Report aggregates the fulfillment statistics of one finished schedule.
// It is a plain value produced once per solve; nothing accumulates state.
type Report struct {
	TotalRequests   int
	Satisfied       int
	FulfillmentRate float64
	Tiers           map[catalog.Priority]TierStats
	Samples         []StudentSchedule
}

type Reporter interface {
	// Summarize computes the statistics of a finished schedule. Pure
	// read-over-final-state: summarizing twice yields identical reports,
	// and an empty schedule reports zero rates rather than an error.
	Summarize(schedule *engine.Schedule, cat *catalog.Catalog) Report
}

func NewReporter(sampleSize int) Reporter {
	return &reporter{sampleSize: sampleSize}
}

type reporter struct {
	sampleSize int
}

func (r *reporter) Summarize(schedule *engine.Schedule, cat *catalog.Catalog) Report {
	report := Report{
		Tiers: make(map[catalog.Priority]TierStats),
	}
	for _, tier := range catalog.Priorities() {
		report.Tiers[tier] = TierStats{}
	}

	//** Per-tier totals from the requests themselves
	requests := cat.Requests()
	report.TotalRequests = len(requests)

	tierOf := make(map[[2]string]catalog.Priority)
	for _, request := range requests {
		stats := report.Tiers[request.Priority]
		stats.Total++
		report.Tiers[request.Priority] = stats

		// A duplicated (student, course) pair across tiers is attributed to the highest
		key := [2]string{request.Student, request.Course}
		if tier, ok := tierOf[key]; !ok || request.Priority > tier {
			tierOf[key] = request.Priority
		}
	}

	//** Satisfied counts
	report.Satisfied = len(schedule.Assignments)
	for _, assignment := range schedule.Assignments {
		tier := tierOf[[2]string{assignment.Student, assignment.Course}]
		stats := report.Tiers[tier]
		stats.Satisfied++
		report.Tiers[tier] = stats
	}

	//** Rates
	if report.TotalRequests > 0 {
		report.FulfillmentRate = float64(report.Satisfied) / float64(report.TotalRequests)
	}
	for tier, stats := range report.Tiers {
		if stats.Total > 0 {
			stats.Rate = float64(stats.Satisfied) / float64(stats.Total)
		}
		report.Tiers[tier] = stats
	}

	report.Samples = r.sampleSchedules(schedule)

	return report
}

// sampleSchedules resolves the first students (in id order) that hold at
// least one assignment
func (r *reporter) sampleSchedules(schedule *engine.Schedule) []StudentSchedule {
	perStudent := lo.GroupBy(schedule.Assignments, func(assignment engine.Assignment) string {
		return assignment.Student
	})

	students := lo.Keys(perStudent)
	slices.Sort(students)
	if len(students) > r.sampleSize {
		students = students[:r.sampleSize]
	}

	return lo.Map(students, func(student string, _ int) StudentSchedule {
		entries := lo.Map(perStudent[student], func(assignment engine.Assignment, _ int) Entry {
			return Entry{
				Course:  assignment.Course,
				Section: assignment.Section,
				Block:   assignment.Block,
				Room:    assignment.Room,
				Teacher: assignment.Teacher,
			}
		})
		slices.SortFunc(entries, func(a, b Entry) int {
			return cmp.Compare(a.Block, b.Block)
		})
		return StudentSchedule{Student: student, Entries: entries}
	})
}

func (report Report) String() string {
	var builder strings.Builder

	builder.WriteString("Scheduling Statistics:\n")
	fmt.Fprintf(&builder, "Total Requests: %v\n", report.TotalRequests)
	fmt.Fprintf(&builder, "Fulfilled Requests: %v\n", report.Satisfied)
	fmt.Fprintf(&builder, "Fulfillment Rate: %.2f%%\n", report.FulfillmentRate*100)

	builder.WriteString("\nPriority-wise Statistics:\n")
	for _, tier := range catalog.Priorities() {
		stats := report.Tiers[tier]
		if stats.Total == 0 {
			continue
		}
		fmt.Fprintf(&builder, "%v: %.2f%% fulfilled (%v/%v)\n", tier, stats.Rate*100, stats.Satisfied, stats.Total)
	}

	for _, sample := range report.Samples {
		fmt.Fprintf(&builder, "\nStudent %v:\n", sample.Student)
		for _, entry := range sample.Entries {
			fmt.Fprintf(&builder, "  Course: %v, Section: %v, Block: %v, Room: %v, Teacher: %v\n",
				entry.Course, entry.Section, entry.Block, entry.Room, entry.Teacher)
		}
	}

	return builder.String()
}
