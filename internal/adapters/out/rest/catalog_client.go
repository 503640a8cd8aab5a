package rest

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"bikerental/internal/core/domain/model/bike"
	"bikerental/internal/pkg/errs"
)

const catalogService = "catalog"

type pricingDTO struct {
	PerDay      int64  `json:"perDay"`
	Weekly      *int64 `json:"weekly,omitempty"`
	Monthly     *int64 `json:"monthly,omitempty"`
	DeliveryFee *int64 `json:"deliveryFee,omitempty"`
}

type bikeDTO struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Type       string     `json:"type"`
	LocationID string     `json:"locationId"`
	Rating     float64    `json:"rating"`
	Pricing    pricingDTO `json:"pricing"`
}

func (d bikeDTO) toDomain() (*bike.Bike, error) {
	var opts []bike.PricingOption
	if d.Pricing.Weekly != nil {
		opts = append(opts, bike.WithWeekly(*d.Pricing.Weekly))
	}
	if d.Pricing.Monthly != nil {
		opts = append(opts, bike.WithMonthly(*d.Pricing.Monthly))
	}
	if d.Pricing.DeliveryFee != nil {
		opts = append(opts, bike.WithDeliveryFee(*d.Pricing.DeliveryFee))
	}

	pricing, err := bike.NewPricing(d.Pricing.PerDay, opts...)
	if err != nil {
		return nil, err
	}
	return bike.NewBike(d.ID, d.Name, d.Type, d.LocationID, d.Rating, pricing)
}

// CatalogClient implements ports.CatalogService.
type CatalogClient struct {
	client *Client
}

func NewCatalogClient(client *Client) *CatalogClient {
	return &CatalogClient{client: client}
}

// ListAvailable calls GET /locations/{id}/bikes with the filter as query
// parameters. Bikes the backend sends in a shape the domain rejects fail
// the whole call.
func (c *CatalogClient) ListAvailable(ctx context.Context, locationID string, filter bike.Filter) ([]*bike.Bike, error) {
	locationID = strings.TrimSpace(locationID)
	if locationID == "" {
		return nil, errs.NewValueIsRequiredError("locationId")
	}

	path := "/locations/" + url.PathEscape(locationID) + "/bikes"
	if q := filterQuery(filter); len(q) > 0 {
		path += "?" + q.Encode()
	}

	var dtos []bikeDTO
	if err := c.client.call(ctx, catalogService, http.MethodGet, path, "", nil, &dtos); err != nil {
		return nil, err
	}

	bikes := make([]*bike.Bike, 0, len(dtos))
	for _, dto := range dtos {
		b, err := dto.toDomain()
		if err != nil {
			return nil, errs.NewExternalServiceErrorWithCause(catalogService, "catalog returned an invalid bike", err)
		}
		bikes = append(bikes, b)
	}
	return bikes, nil
}

func filterQuery(f bike.Filter) url.Values {
	q := url.Values{}
	if f.Type != "" {
		q.Set("type", f.Type)
	}
	if f.MinPrice != nil {
		q.Set("minPrice", strconv.FormatInt(*f.MinPrice, 10))
	}
	if f.MaxPrice != nil {
		q.Set("maxPrice", strconv.FormatInt(*f.MaxPrice, 10))
	}
	if f.Sort != bike.SortDefault {
		q.Set("sort", string(f.Sort))
	}
	return q
}
