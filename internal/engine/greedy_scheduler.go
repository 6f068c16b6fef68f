package engine

import (
	"cmp"
	"slices"

	"github.com/limaJavier/sectioning/internal/catalog"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// greedyScheduler is a priority-ordered constructive search. Tiers are
// processed from the heaviest weight down; commitments of a finished tier
// are never revoked for a lighter one. All iteration orders are total, so
// two solves over the same catalog produce identical schedules.
type greedyScheduler struct {
	policy Policy
	logger *zap.Logger

	//** Dependencies, initialized per solve
	catalog   *catalog.Catalog
	index     *ConstraintIndex
	evaluator FeasibilityEvaluator
}

func newGreedyScheduler(policy Policy, logger *zap.Logger) *greedyScheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if policy.Weights == nil {
		policy.Weights = DefaultPolicy().Weights
	}
	for tier, weight := range DefaultPolicy().Weights {
		if _, ok := policy.Weights[tier]; !ok {
			policy.Weights[tier] = weight
		}
	}

	return &greedyScheduler{
		policy: policy,
		logger: logger,
	}
}

func (scheduler *greedyScheduler) Build(cat *catalog.Catalog) (*Schedule, error) {
	//** Initialize dependencies
	index, err := NewConstraintIndex(cat)
	if err != nil {
		return nil, err
	}
	scheduler.catalog = cat
	scheduler.index = index
	scheduler.evaluator = NewFeasibilityEvaluator(cat, index)

	//** Partition requests into tiers, heaviest weight first
	tiers := lo.GroupBy(cat.Requests(), func(request catalog.StudentRequest) catalog.Priority {
		return request.Priority
	})
	order := catalog.Priorities()
	slices.SortStableFunc(order, func(a, b catalog.Priority) int {
		return cmp.Compare(scheduler.policy.Weights[b], scheduler.policy.Weights[a])
	})

	schedule := &Schedule{}
	committed := 0

	for _, tier := range order {
		requests := tiers[tier]
		if len(requests) == 0 {
			continue
		}

		// Stable tie-break inside a tier: student id, then course id
		slices.SortFunc(requests, func(a, b catalog.StudentRequest) int {
			if comparison := cmp.Compare(a.Student, b.Student); comparison != 0 {
				return comparison
			}
			return cmp.Compare(a.Course, b.Course)
		})

		scheduler.logger.Info("tier started",
			zap.Stringer("tier", tier),
			zap.Int("requests", len(requests)),
		)

		for _, request := range requests {
			capped := scheduler.policy.RequestCap > 0 && committed >= scheduler.policy.RequestCap

			assignment, reason, err := scheduler.place(request, capped)
			if err != nil {
				return nil, err
			}

			if assignment != nil {
				schedule.Assignments = append(schedule.Assignments, *assignment)
				committed++
				scheduler.logger.Debug("request satisfied",
					zap.String("student", request.Student),
					zap.String("section", assignment.Section),
				)
			} else {
				schedule.Unassigned = append(schedule.Unassigned, Unassigned{
					Student: request.Student,
					Course:  request.Course,
					Reason:  reason,
				})
				scheduler.logger.Debug("request unsatisfied",
					zap.String("student", request.Student),
					zap.String("course", request.Course),
					zap.Stringer("reason", reason),
				)
			}
		}
	}

	schedule.Bindings = index.Bindings()

	scheduler.logger.Info("solve finished",
		zap.Int("satisfied", len(schedule.Assignments)),
		zap.Int("unsatisfied", len(schedule.Unassigned)),
	)

	return schedule, nil
}

type candidate struct {
	section   catalog.Section
	binding   Binding
	remaining int
}

// place attempts one request. With classifyOnly the request is only
// classified: no binding and no commit happen, so an iteration-capped solve
// still reports meaningful reason codes for the requests past the cap.
func (scheduler *greedyScheduler) place(request catalog.StudentRequest, classifyOnly bool) (*Assignment, ReasonCode, error) {
	// Prerequisites rule out the whole course regardless of capacity
	if !scheduler.evaluator.PrerequisitesSatisfied(request.Student, request.Course) {
		return nil, MissingPrerequisite, nil
	}

	//** Enumerate feasible candidates in section-id order
	feasible := make([]candidate, 0)
	reasons := make([]ReasonCode, 0)

	for _, section := range scheduler.catalog.SectionsOf(request.Course) {
		if !scheduler.evaluator.HasCapacity(section) {
			reasons = append(reasons, NoCapacity)
			continue
		}
		if scheduler.evaluator.Conflicts(request.Student, section.Block) {
			reasons = append(reasons, BlockConflict)
			continue
		}

		binding, reason, ok := scheduler.chooseBinding(section)
		if !ok {
			reasons = append(reasons, reason)
			continue
		}

		feasible = append(feasible, candidate{
			section:   section,
			binding:   binding,
			remaining: section.Capacity - scheduler.index.Occupancy(section.Id),
		})
	}

	if len(feasible) == 0 || classifyOnly {
		return nil, aggregateReason(reasons), nil
	}

	//** Prefer the emptiest section to reduce future contention; ties keep section-id order
	slices.SortStableFunc(feasible, func(a, b candidate) int {
		return cmp.Compare(b.remaining, a.remaining)
	})

	//** Commit the best candidate; on a binding self-conflict undo and retry with the next one
	for _, chosen := range feasible {
		newlyBound := scheduler.incompleteBinding(chosen.section.Id)
		if newlyBound {
			if err := scheduler.index.Bind(chosen.section, chosen.binding.Room, chosen.binding.Teacher); err != nil {
				reasons = append(reasons, NoCapacity)
				continue
			}
		}

		assignment := Assignment{
			Student: request.Student,
			Course:  request.Course,
			Section: chosen.section.Id,
			Block:   chosen.section.Block,
			Room:    chosen.binding.Room,
			Teacher: chosen.binding.Teacher,
		}
		if err := scheduler.index.Commit(assignment); err != nil {
			if newlyBound {
				if unbindErr := scheduler.index.Unbind(chosen.section.Id); unbindErr != nil {
					return nil, 0, unbindErr
				}
			}
			reasons = append(reasons, NoCapacity)
			continue
		}

		return &assignment, 0, nil
	}

	return nil, aggregateReason(reasons), nil
}

// chooseBinding resolves the room and teacher a section would be bound to,
// without reserving anything. Partial preassignments are kept and only the
// missing half is chosen, least-loaded first, ties by lowest id.
func (scheduler *greedyScheduler) chooseBinding(section catalog.Section) (Binding, ReasonCode, bool) {
	binding, _ := scheduler.index.Binding(section.Id)

	if binding.Room == "" {
		equipped := lo.Filter(scheduler.catalog.Rooms(), func(room catalog.Room, _ int) bool {
			return scheduler.evaluator.Equipped(section, room)
		})
		if len(equipped) == 0 {
			return Binding{}, EquipmentUnavailable, false
		}

		available := lo.Filter(equipped, func(room catalog.Room, _ int) bool {
			return scheduler.evaluator.Fits(section, room) && !scheduler.index.RoomLoad(room.Id, section.Block)
		})
		if len(available) == 0 {
			return Binding{}, NoCapacity, false
		}

		// Rooms() is id-ascending, so the stable sort keeps id order within equal loads
		slices.SortStableFunc(available, func(a, b catalog.Room) int {
			return cmp.Compare(scheduler.index.RoomBoundBlocks(a.Id), scheduler.index.RoomBoundBlocks(b.Id))
		})
		binding.Room = available[0].Id
	}

	if binding.Teacher == "" {
		available := lo.Filter(scheduler.catalog.Teachers(), func(teacher catalog.Teacher, _ int) bool {
			return teacher.Qualified(section.Course) &&
				!scheduler.evaluator.Overloaded(teacher) &&
				!scheduler.index.TeacherLoad(teacher.Id, section.Block)
		})
		if len(available) == 0 {
			return Binding{}, NoTeacherAvailable, false
		}

		slices.SortStableFunc(available, func(a, b catalog.Teacher) int {
			return cmp.Compare(scheduler.index.TeacherBoundBlocks(a.Id), scheduler.index.TeacherBoundBlocks(b.Id))
		})
		binding.Teacher = available[0].Id
	}

	return binding, 0, true
}

func (scheduler *greedyScheduler) incompleteBinding(sectionId string) bool {
	binding, ok := scheduler.index.Binding(sectionId)
	return !ok || binding.Room == "" || binding.Teacher == ""
}

// Reason precedence when a request fails for different reasons across its
// candidate sections. MissingPrerequisite never reaches this point since it
// is decided per course, before sections are enumerated.
var reasonPrecedence = map[ReasonCode]int{
	EquipmentUnavailable: 3,
	NoTeacherAvailable:   2,
	BlockConflict:        1,
	NoCapacity:           0,
}

func aggregateReason(reasons []ReasonCode) ReasonCode {
	aggregated := NoCapacity
	for _, reason := range reasons {
		if reasonPrecedence[reason] > reasonPrecedence[aggregated] {
			aggregated = reason
		}
	}
	return aggregated
}
