package http

import (
	"bikerental/internal/core/application/usecases/commands"
	"bikerental/internal/core/application/usecases/queries"
	"bikerental/internal/core/domain/model/bike"
	"bikerental/internal/core/domain/model/booking"
	"bikerental/internal/core/domain/model/kernel"
)

type LocationRequest struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

func (r *LocationRequest) toDomain() (kernel.Location, error) {
	if r == nil {
		return kernel.Location{}, nil
	}
	return kernel.NewLocation(r.ID, r.Name, r.Address)
}

type SelectLocationsRequest struct {
	Pickup  *LocationRequest `json:"pickup"`
	Dropoff *LocationRequest `json:"dropoff"`
}

type FilterRequest struct {
	Type     string `json:"type"`
	MinPrice *int64 `json:"minPrice"`
	MaxPrice *int64 `json:"maxPrice"`
	Sort     string `json:"sort"`
}

func (r FilterRequest) toDomain() (bike.Filter, error) {
	return bike.NewFilter(r.Type, r.MinPrice, r.MaxPrice, r.Sort)
}

type SelectBikeRequest struct {
	BikeID string `json:"bikeId"`
}

type RentalPeriodRequest struct {
	StartDate       string `json:"startDate"`
	StartTime       string `json:"startTime"`
	EndDate         string `json:"endDate"`
	EndTime         string `json:"endTime"`
	DeliveryAddress string `json:"deliveryAddress"`
}

func (r RentalPeriodRequest) toDomain() (booking.RentalPeriod, error) {
	return booking.NewRentalPeriod(r.StartDate, r.StartTime, r.EndDate, r.EndTime, r.DeliveryAddress)
}

type SelectPartnerRequest struct {
	PartnerID string `json:"partnerId"`
}

type ConfirmRequest struct {
	ReturnTo string `json:"returnTo"`
}

type ResumeRequest struct {
	ResumeToken string `json:"resumeToken"`
}

type StartWizardResponse struct {
	ID string `json:"id"`
}

// ConfirmResponse carries either a login redirect or the refreshed wizard.
type ConfirmResponse struct {
	LoginURL    string                          `json:"loginUrl,omitempty"`
	ResumeToken string                          `json:"resumeToken,omitempty"`
	Booking     *commands.BookingSummary        `json:"booking,omitempty"`
	Wizard      *queries.GetWizardQueryResponse `json:"wizard,omitempty"`
}
