package rest

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"bikerental/internal/core/domain/model/partner"
	"bikerental/internal/pkg/errs"
)

const partnerService = "partners"

type partnerDTO struct {
	ID          string `json:"id"`
	CompanyName string `json:"companyName"`
	Address     string `json:"address"`
	MapAddress  string `json:"mapAddress"`
}

// PartnerClient implements ports.PartnerDirectory.
type PartnerClient struct {
	client *Client
}

func NewPartnerClient(client *Client) *PartnerClient {
	return &PartnerClient{client: client}
}

// GetByID calls GET /partners/{id}. A 404 maps to errs.ErrObjectNotFound.
func (c *PartnerClient) GetByID(ctx context.Context, partnerID string) (*partner.Partner, error) {
	partnerID = strings.TrimSpace(partnerID)
	if partnerID == "" {
		return nil, errs.NewValueIsRequiredError("partnerId")
	}

	var dto partnerDTO
	err := c.client.call(ctx, partnerService, http.MethodGet, "/partners/"+url.PathEscape(partnerID), "", nil, &dto)
	if err != nil {
		var external *errs.ExternalServiceError
		if errors.As(err, &external) && external.StatusCode == http.StatusNotFound {
			return nil, errs.NewObjectNotFoundErrorWithCause("partner", partnerID, err)
		}
		return nil, err
	}

	p, err := partner.NewPartner(dto.ID, dto.CompanyName, dto.Address, dto.MapAddress)
	if err != nil {
		return nil, errs.NewExternalServiceErrorWithCause(partnerService, "partner record is invalid", err)
	}
	return p, nil
}
