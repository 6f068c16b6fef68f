package main

import (
	"cmp"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"slices"

	"github.com/limaJavier/sectioning/internal/catalog"
	"github.com/limaJavier/sectioning/internal/config"
	"github.com/limaJavier/sectioning/internal/engine"
	"github.com/limaJavier/sectioning/internal/logger"
	"github.com/limaJavier/sectioning/internal/report"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

type satisfiedEntry struct {
	StudentId string `json:"studentId"`
	CourseId  string `json:"courseId"`
	SectionId string `json:"sectionId"`
	Block     string `json:"block"`
	RoomId    string `json:"roomId"`
	TeacherId string `json:"teacherId"`
}

type unsatisfiedEntry struct {
	StudentId  string `json:"studentId"`
	CourseId   string `json:"courseId"`
	ReasonCode string `json:"reasonCode"`
}

type bindingEntry struct {
	RoomId    string `json:"roomId"`
	TeacherId string `json:"teacherId"`
}

type tierStatsEntry struct {
	Total     int     `json:"total"`
	Fulfilled int     `json:"fulfilled"`
	Rate      float64 `json:"rate"`
}

type statsEntry struct {
	TotalRequests     int                       `json:"totalRequests"`
	FulfilledRequests int                       `json:"fulfilledRequests"`
	FulfillmentRate   float64                   `json:"fulfillmentRate"`
	PriorityStats     map[string]tierStatsEntry `json:"priorityStats"`
}

type scheduleOutput struct {
	Satisfied   []satisfiedEntry        `json:"satisfied"`
	Unsatisfied []unsatisfiedEntry      `json:"unsatisfied"`
	Bindings    map[string]bindingEntry `json:"bindings"`
	Stats       statsEntry              `json:"stats"`
}

func main() {
	// Define arguments
	filePathPtr := flag.String("file", "", "Path to the cleaned dataset file")
	outFilePathPtr := flag.String("out", "", "Path to the file where the schedule will be written; if empty, it'll be written into the Standard Output")
	configPathPtr := flag.String("config", "", "Path to an optional configuration file")
	samplePtr := flag.Int("sample", -1, "Number of sample student schedules in the report; negative values use the configured one")
	flag.Parse()
	filePath := *filePathPtr
	outFile := *outFilePathPtr

	// Validate arguments
	if filePath == "" {
		log.Fatal("an input file must be specified")
	}

	cfg, err := config.Load(*configPathPtr)
	if err != nil {
		log.Fatalf("cannot load configuration: %v", err)
	}

	zapLogger, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("cannot initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	// Extract input
	dataset, err := catalog.DatasetFromJson(filePath)
	if err != nil {
		zapLogger.Fatal("cannot read dataset", zap.Error(err))
	}
	cat, err := catalog.NewCatalog(dataset)
	if err != nil {
		zapLogger.Fatal("cannot build catalog", zap.Error(err))
	}

	// Initialize engine and build schedule
	scheduler := engine.NewScheduler(cfg.Policy(), zapLogger)
	schedule, err := scheduler.Build(cat)
	if err != nil {
		zapLogger.Fatal("an error occurred during schedule construction", zap.Error(err))
	}

	// Verify schedule correctness
	if !scheduler.Verify(schedule, cat) {
		zapLogger.Error("schedule verification failed")
		os.Exit(15)
	}

	// Print the fulfillment report
	sampleSize := cfg.SampleSize
	if *samplePtr >= 0 {
		sampleSize = *samplePtr
	}
	fulfillment := report.NewReporter(sampleSize).Summarize(schedule, cat)
	fmt.Println(fulfillment)

	// Marshal schedule into json
	scheduleJson, err := json.MarshalIndent(buildOutput(schedule, fulfillment), "", "  ")
	if err != nil {
		zapLogger.Fatal("an error occurred while building output json", zap.Error(err))
	}

	// Verify outfile is empty, if so then write the results to the Standard Output
	if outFile == "" {
		fmt.Println(string(scheduleJson))
	} else {
		if err := os.WriteFile(outFile, scheduleJson, 0666); err != nil {
			zapLogger.Fatal("an error occurred while writing to the output file", zap.Error(err))
		}
	}
}

func buildOutput(schedule *engine.Schedule, fulfillment report.Report) scheduleOutput {
	satisfied := lo.Map(schedule.Assignments, func(assignment engine.Assignment, _ int) satisfiedEntry {
		return satisfiedEntry{
			StudentId: assignment.Student,
			CourseId:  assignment.Course,
			SectionId: assignment.Section,
			Block:     string(assignment.Block),
			RoomId:    assignment.Room,
			TeacherId: assignment.Teacher,
		}
	})
	slices.SortFunc(satisfied, func(a, b satisfiedEntry) int {
		if comparison := cmp.Compare(a.StudentId, b.StudentId); comparison != 0 {
			return comparison
		}
		return cmp.Compare(a.Block, b.Block)
	})

	unsatisfied := lo.Map(schedule.Unassigned, func(unassigned engine.Unassigned, _ int) unsatisfiedEntry {
		return unsatisfiedEntry{
			StudentId:  unassigned.Student,
			CourseId:   unassigned.Course,
			ReasonCode: unassigned.Reason.String(),
		}
	})
	slices.SortFunc(unsatisfied, func(a, b unsatisfiedEntry) int {
		if comparison := cmp.Compare(a.StudentId, b.StudentId); comparison != 0 {
			return comparison
		}
		return cmp.Compare(a.CourseId, b.CourseId)
	})

	bindings := make(map[string]bindingEntry, len(schedule.Bindings))
	for section, binding := range schedule.Bindings {
		bindings[section] = bindingEntry{RoomId: binding.Room, TeacherId: binding.Teacher}
	}

	priorityStats := make(map[string]tierStatsEntry, len(fulfillment.Tiers))
	for tier, stats := range fulfillment.Tiers {
		priorityStats[tier.String()] = tierStatsEntry{
			Total:     stats.Total,
			Fulfilled: stats.Satisfied,
			Rate:      stats.Rate,
		}
	}

	return scheduleOutput{
		Satisfied:   satisfied,
		Unsatisfied: unsatisfied,
		Bindings:    bindings,
		Stats: statsEntry{
			TotalRequests:     fulfillment.TotalRequests,
			FulfilledRequests: fulfillment.Satisfied,
			FulfillmentRate:   fulfillment.FulfillmentRate,
			PriorityStats:     priorityStats,
		},
	}
}
