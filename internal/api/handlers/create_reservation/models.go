package create_reservation

import (
	"time"

	"github.com/daiki-lova/Privateskytour-sub000/internal/domain"
	createReservation "github.com/daiki-lova/Privateskytour-sub000/internal/usecase/create_reservation"
	"github.com/daiki-lova/Privateskytour-sub000/pkg/types"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `json:"customerEmail"`
	CourseID      int64   `json:"courseId"`
	FlightDate    string  `json:"flightDate"` // "2025-10-15"
	FlightTime    string  `json:"flightTime"` // "10:00"
	Pax           int     `json:"pax"`
	Notes         *string `json:"notes,omitempty"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID            int64   `json:"id"`
	BookingNumber string  `json:"bookingNumber"`
	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `json:"customerEmail"`
	CustomerToken string  `json:"customerToken"`
	CourseID      int64   `json:"courseId"`
	CourseTitle   string  `json:"courseTitle"`
	HeliportName  string  `json:"heliportName"`
	FlightDate    string  `json:"flightDate"`
	FlightTime    string  `json:"flightTime"`
	Pax           int     `json:"pax"`
	Price         string  `json:"price"`
	Status        string  `json:"status"`
	PaymentStatus string  `json:"paymentStatus"`
	Notes         *string `json:"notes,omitempty"`
	BookedAt      string  `json:"bookedAt"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

// ToUseCaseRequest converts the HTTP request, parsing date and time.
func (r *CreateReservationRequest) ToUseCaseRequest() (*createReservation.Request, error) {
	flightDate, err := time.Parse(domain.DateFormat, r.FlightDate)
	if err != nil {
		return nil, err
	}

	flightTime, err := types.NewTimeStringFromString(r.FlightTime)
	if err != nil {
		return nil, err
	}

	return &createReservation.Request{
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		CourseID:      r.CourseID,
		FlightDate:    flightDate,
		FlightTime:    flightTime,
		Pax:           r.Pax,
		Notes:         r.Notes,
	}, nil
}

// FromUseCaseResponse converts the use case response to HTTP.
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:            resp.ID,
		BookingNumber: resp.BookingNumber,
		CustomerName:  resp.CustomerName,
		CustomerEmail: resp.CustomerEmail,
		CustomerToken: resp.CustomerToken,
		CourseID:      resp.CourseID,
		CourseTitle:   resp.CourseTitle,
		HeliportName:  resp.HeliportName,
		FlightDate:    resp.FlightDate.Format(domain.DateFormat),
		FlightTime:    resp.FlightTime.String(),
		Pax:           resp.Pax,
		Price:         resp.Price,
		Status:        resp.Status,
		PaymentStatus: resp.PaymentStatus,
		Notes:         resp.Notes,
		BookedAt:      resp.BookedAt.Format(time.RFC3339),
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     resp.UpdatedAt.Format(time.RFC3339),
	}
}
