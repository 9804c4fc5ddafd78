package models

import (
	"time"

	"github.com/daiki-lova/Privateskytour-sub000/internal/domain"
)

// Request models

// CancelReservationRequest cancels one reservation.
type CancelReservationRequest struct {
	Actor  string `json:"actor"`
	Cause  string `json:"cause"`
	Reason string `json:"reason"`
}

// SuspendReservationRequest records an operator stoppage.
type SuspendReservationRequest struct {
	Actor  string `json:"actor"`
	Reason string `json:"reason"`
}

// RecordRefundRequest records a completed external refund. Amount is
// optional; when omitted the recorded refund obligation is used.
type RecordRefundRequest struct {
	Actor  string  `json:"actor"`
	Amount *string `json:"amount,omitempty"`
}

// Response models

// ReservationResponse is the external view of a reservation.
type ReservationResponse struct {
	ID            int64  `json:"id"`
	BookingNumber string `json:"bookingNumber"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	CourseID      int64  `json:"courseId"`
	CourseTitle   string `json:"courseTitle"`
	HeliportName  string `json:"heliportName"`
	FlightDate    string `json:"flightDate"` // "2025-10-15"
	FlightTime    string `json:"flightTime"` // "10:00"
	Pax           int    `json:"pax"`
	Price         string `json:"price"`
	Status        string `json:"status"`
	PaymentStatus string `json:"paymentStatus"`

	Notes *string `json:"notes,omitempty"`

	CancellationCause  *string `json:"cancellationCause,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"`
	FeeAmount          *string `json:"feeAmount,omitempty"`

	SuspendedAt    *string `json:"suspendedAt,omitempty"`
	RefundedAt     *string `json:"refundedAt,omitempty"`
	RefundedBy     *string `json:"refundedBy,omitempty"`
	RefundedAmount *string `json:"refundedAmount,omitempty"`

	BookedAt  time.Time `json:"bookedAt"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse wraps a reservation listing.
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// CancellationResponse reports the outcome of a cancellation, including the
// policy assessment applied.
type CancellationResponse struct {
	Reservation   ReservationResponse `json:"reservation"`
	FeePercent    int                 `json:"feePercent"`
	RefundPercent int                 `json:"refundPercent"`
	FeeAmount     string              `json:"feeAmount"`
	RefundAmount  string              `json:"refundAmount"`
}

// AuditLogResponse is the external view of one audit entry.
type AuditLogResponse struct {
	ID          int64     `json:"id"`
	Category    string    `json:"category"`
	Status      string    `json:"status"`
	Action      string    `json:"action"`
	Message     string    `json:"message"`
	TargetTable string    `json:"targetTable"`
	TargetID    int64     `json:"targetId"`
	Actor       string    `json:"actor"`
	Before      *string   `json:"before,omitempty"`
	After       *string   `json:"after,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// AuditLogListResponse wraps an audit listing.
type AuditLogListResponse struct {
	Entries []AuditLogResponse `json:"entries"`
}

// Conversion helpers

// FromDomainReservation converts a domain reservation to its DTO.
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	resp := &ReservationResponse{
		ID:            r.ID,
		BookingNumber: r.BookingNumber,
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		CourseID:      r.CourseID,
		CourseTitle:   r.CourseTitle,
		HeliportName:  r.HeliportName,
		FlightDate:    r.FlightDate.Format(domain.DateFormat),
		FlightTime:    r.FlightTime.String(),
		Pax:           r.Pax,
		Price:         r.Price.StringFixed(2),
		Status:        string(r.Status),
		PaymentStatus: string(r.PaymentStatus),
		Notes:         r.Notes,
		BookedAt:      r.BookedAt,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}

	if r.CancellationCause != nil {
		cause := string(*r.CancellationCause)
		resp.CancellationCause = &cause
	}
	resp.CancellationReason = r.CancellationReason
	if r.CancelledAt != nil {
		s := r.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &s
	}
	if r.FeeAmount != nil {
		s := r.FeeAmount.StringFixed(2)
		resp.FeeAmount = &s
	}
	if r.SuspendedAt != nil {
		s := r.SuspendedAt.Format(time.RFC3339)
		resp.SuspendedAt = &s
	}
	if r.RefundedAt != nil {
		s := r.RefundedAt.Format(time.RFC3339)
		resp.RefundedAt = &s
	}
	resp.RefundedBy = r.RefundedBy
	if r.RefundedAmount != nil {
		s := r.RefundedAmount.StringFixed(2)
		resp.RefundedAmount = &s
	}

	return resp
}

// FromDomainReservationList converts a reservation slice to its DTO.
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, 0, len(reservations)),
	}
	for _, r := range reservations {
		if dto := FromDomainReservation(r); dto != nil {
			resp.Reservations = append(resp.Reservations, *dto)
		}
	}
	return resp
}

// FromDomainAuditLog converts one audit entry to its DTO.
func FromDomainAuditLog(e *domain.AuditLogEntry) AuditLogResponse {
	return AuditLogResponse{
		ID:          e.ID,
		Category:    e.Category,
		Status:      string(e.Status),
		Action:      e.Action,
		Message:     e.Message,
		TargetTable: e.TargetTable,
		TargetID:    e.TargetID,
		Actor:       e.Actor,
		Before:      e.Before,
		After:       e.After,
		CreatedAt:   e.CreatedAt,
	}
}

// FromDomainAuditLogList converts an audit entry slice to its DTO.
func FromDomainAuditLogList(entries []*domain.AuditLogEntry) *AuditLogListResponse {
	resp := &AuditLogListResponse{
		Entries: make([]AuditLogResponse, 0, len(entries)),
	}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, FromDomainAuditLog(e))
	}
	return resp
}
