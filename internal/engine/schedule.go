package engine

import (
	"fmt"

	"github.com/limaJavier/sectioning/internal/catalog"
)

// ReasonCode explains why a request ended up unsatisfied.
type ReasonCode int

const (
	NoCapacity ReasonCode = iota
	BlockConflict
	MissingPrerequisite
	EquipmentUnavailable
	NoTeacherAvailable
)

var reasonLabels = map[ReasonCode]string{
	NoCapacity:           "NoCapacity",
	BlockConflict:        "BlockConflict",
	MissingPrerequisite:  "MissingPrerequisite",
	EquipmentUnavailable: "EquipmentUnavailable",
	NoTeacherAvailable:   "NoTeacherAvailable",
}

func (reason ReasonCode) String() string {
	label, ok := reasonLabels[reason]
	if !ok {
		panic(fmt.Sprintf("unknown reason code: %d", int(reason)))
	}
	return label
}

// Assignment binds one satisfied request to one section.
type Assignment struct {
	Student string
	Course  string
	Section string
	Block   catalog.Block
	Room    string
	Teacher string
}

// Unassigned records one request the engine could not satisfy.
type Unassigned struct {
	Student string
	Course  string
	Reason  ReasonCode
}

// Binding is the final room and teacher of a section.
type Binding struct {
	Room    string
	Teacher string
}

// Schedule is the engine's terminal state: every request is either in
// Assignments or in Unassigned, and Bindings holds the section bindings the
// solve settled on.
type Schedule struct {
	Assignments []Assignment
	Unassigned  []Unassigned
	Bindings    map[string]Binding
}
