// Package get_available_slots computes the availability picture for one
// date. Slots are derived on the fly from active courses, the operating
// allow-list and live reservation aggregates; nothing is cached.
package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/daiki-lova/Privateskytour-sub000/internal/domain"
	courseRepo "github.com/daiki-lova/Privateskytour-sub000/internal/infra/storage/course"
)

// UseCase lists available slots.
type UseCase struct {
	reservationRepo ReservationRepository
	courseRepo      CourseRepository
	operatingRepo   OperatingConfigRepository
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase creates the use case.
func NewUseCase(
	reservationRepo ReservationRepository,
	courseRepo CourseRepository,
	operatingRepo OperatingConfigRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		courseRepo:      courseRepo,
		operatingRepo:   operatingRepo,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute returns the slot grid of one date. Reads are not transactional:
// the booking path re-checks capacity under a serializable transaction, so
// a slightly stale listing can never oversell.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// 1. Operating configuration. Holiday mode empties the grid.
	operating, err := uc.operatingRepo.Get(ctx)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to load operating config: %v", err)
		return nil, fmt.Errorf("%w: failed to load operating config: %v", ErrInternal, err)
	}

	// 2. Courses to consider.
	var courses []*domain.Course
	if req.CourseID != nil {
		course, err := uc.courseRepo.GetByID(ctx, *req.CourseID)
		if err != nil {
			if errors.Is(err, courseRepo.ErrCourseNotFound) {
				return nil, ErrCourseNotFound
			}
			uc.logger.Error("GetAvailableSlots: failed to get course id=%d: %v", *req.CourseID, err)
			return nil, fmt.Errorf("%w: failed to get course: %v", ErrInternal, err)
		}
		if !course.Active {
			return nil, ErrCourseNotFound
		}
		courses = []*domain.Course{course}
	} else {
		courses, err = uc.courseRepo.ListActive(ctx)
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to list courses: %v", err)
			return nil, fmt.Errorf("%w: failed to list courses: %v", ErrInternal, err)
		}
	}

	// 3. Held pax per (course, time) on the date.
	aggregates, err := uc.reservationRepo.AggregateHeldPax(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to aggregate pax: %v", err)
		return nil, fmt.Errorf("%w: failed to aggregate pax: %v", ErrInternal, err)
	}

	slots := buildSlots(courses, operating, aggregates, req.Date)
	if req.Dedupe {
		slots = dedupeByTime(slots)
	}

	resp := &Response{
		Date:  req.Date.Format(domain.DateFormat),
		Slots: make([]SlotView, 0, len(slots)),
	}
	for _, slot := range slots {
		resp.Slots = append(resp.Slots, toSlotView(slot))
	}

	uc.logger.Info("GetAvailableSlots: date=%s slots=%d", resp.Date, len(resp.Slots))
	return resp, nil
}
