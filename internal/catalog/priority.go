package catalog

import "fmt"

// Priority is the tier attached to a student request. A higher value outranks a lower one.
type Priority int

const (
	PriorityRecommended Priority = iota
	PriorityRequested
	PriorityRequired
	PriorityCore
)

var priorityLabels = map[Priority]string{
	PriorityCore:        "Core course",
	PriorityRequired:    "Required",
	PriorityRequested:   "Requested",
	PriorityRecommended: "Recommended",
}

func (priority Priority) String() string {
	label, ok := priorityLabels[priority]
	if !ok {
		panic(fmt.Sprintf("unknown priority: %d", int(priority)))
	}
	return label
}

func (priority Priority) Valid() bool {
	_, ok := priorityLabels[priority]
	return ok
}

// ParsePriority maps a dataset tier label to its Priority
func ParsePriority(label string) (Priority, error) {
	for priority, priorityLabel := range priorityLabels {
		if label == priorityLabel {
			return priority, nil
		}
	}
	return 0, fmt.Errorf("%q is not a valid priority", label)
}

// Priorities returns all tiers from highest to lowest
func Priorities() []Priority {
	return []Priority{PriorityCore, PriorityRequired, PriorityRequested, PriorityRecommended}
}
