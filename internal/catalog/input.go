package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
)

type TeacherRecord struct {
	Id        string   `mapstructure:"id"`
	Courses   []string `mapstructure:"courses"`
	MaxBlocks int      `mapstructure:"maxBlocks"`
}

type RoomRecord struct {
	Id        string   `mapstructure:"id"`
	Capacity  int      `mapstructure:"capacity"`
	Equipment []string `mapstructure:"equipment"`
}

type CourseRecord struct {
	Id            string   `mapstructure:"id"`
	Prerequisites []string `mapstructure:"prerequisites"`
}

type SectionRecord struct {
	Id        string   `mapstructure:"id"`
	Course    string   `mapstructure:"course"`
	Block     string   `mapstructure:"block"`
	Capacity  int      `mapstructure:"capacity"`
	Equipment []string `mapstructure:"equipment"`
	Room      string   `mapstructure:"room"`
	Teacher   string   `mapstructure:"teacher"`
}

type RequestRecord struct {
	Student   string   `mapstructure:"student"`
	Course    string   `mapstructure:"course"`
	Priority  string   `mapstructure:"priority"`
	Completed []string `mapstructure:"completed"`
}

// Dataset is the cleaned input handed over by the ingestion side. All
// format normalization and missing-value repair happens before this point.
type Dataset struct {
	Teachers []TeacherRecord `mapstructure:"teachers"`
	Rooms    []RoomRecord    `mapstructure:"rooms"`
	Courses  []CourseRecord  `mapstructure:"courses"`
	Sections []SectionRecord `mapstructure:"sections"`
	Requests []RequestRecord `mapstructure:"requests"`
}

func DatasetFromJson(file string) (Dataset, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return Dataset{}, fmt.Errorf("cannot read input file: %v", err)
	}

	var datasetJson map[string]any
	if err := json.Unmarshal(bytes, &datasetJson); err != nil {
		return Dataset{}, fmt.Errorf("cannot parse input file: %v", err)
	}

	var dataset Dataset
	if err := mapstructure.Decode(datasetJson, &dataset); err != nil {
		return Dataset{}, fmt.Errorf("cannot decode input file: %v", err)
	}

	return dataset, nil
}
