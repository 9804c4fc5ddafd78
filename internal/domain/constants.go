package domain

// Business validation constants
const (
	MinPax                      = 1
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxCustomerNameLength       = 100
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Notification job types dispatched by the scheduler.
const (
	JobThankYou     = "thank_you"
	JobReminder3Day = "reminder_3day"
	JobReminder1Day = "reminder_1day"
)

// ReminderOffsets maps a reminder job to its days-before-flight offset.
var ReminderOffsets = map[string]int{
	JobReminder3Day: 3,
	JobReminder1Day: 1,
}

// HoldingStatuses are the reservation statuses that count against slot
// capacity. Used when summing pax per slot.
var HoldingStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}

// TerminalStatuses accept no further lifecycle transition.
var TerminalStatuses = []ReservationStatus{
	StatusCancelled,
	StatusCompleted,
}
