package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/flexirent/flexirent-client/internal/domain"
	"github.com/flexirent/flexirent-client/internal/gateway"
)

type PropertiesClient struct {
	gw *gateway.Gateway
}

func NewPropertiesClient(gw *gateway.Gateway) *PropertiesClient {
	return &PropertiesClient{gw: gw}
}

// PropertyRequest is the create/update payload for a listing.
type PropertyRequest struct {
	Title         string              `json:"title" validate:"required"`
	Description   string              `json:"description,omitempty"`
	Address       string              `json:"address" validate:"required"`
	City          string              `json:"city" validate:"required"`
	State         string              `json:"state" validate:"required"`
	ZipCode       string              `json:"zipCode" validate:"required"`
	Country       string              `json:"country" validate:"required"`
	PricePerMonth float64             `json:"pricePerMonth" validate:"gte=0"`
	Bedrooms      int                 `json:"bedrooms" validate:"gte=0"`
	Bathrooms     int                 `json:"bathrooms" validate:"gte=0"`
	AreaSqft      int                 `json:"areaSqft" validate:"gte=0"`
	PropertyType  domain.PropertyType `json:"propertyType" validate:"required"`
	LandlordID    int64               `json:"landlordId" validate:"required"`
	Amenities     []domain.Amenity    `json:"amenities,omitempty"`
	ImageURLs     []string            `json:"imageUrls,omitempty"`
}

func (c *PropertiesClient) List(ctx context.Context) ([]domain.Property, error) {
	var props []domain.Property
	if err := c.gw.Send(ctx, "GET", "/api/properties", nil, nil, &props); err != nil {
		return nil, err
	}
	return props, nil
}

func (c *PropertiesClient) Get(ctx context.Context, id int64) (*domain.Property, error) {
	var prop domain.Property
	if err := c.gw.Send(ctx, "GET", fmt.Sprintf("/api/properties/%d", id), nil, nil, &prop); err != nil {
		return nil, err
	}
	return &prop, nil
}

func (c *PropertiesClient) ListByLandlord(ctx context.Context, landlordID int64) ([]domain.Property, error) {
	var props []domain.Property
	if err := c.gw.Send(ctx, "GET", fmt.Sprintf("/api/properties/landlord/%d", landlordID), nil, nil, &props); err != nil {
		return nil, err
	}
	return props, nil
}

// Search queries the filtered listing endpoint. The remote answers with a
// page object (`{"content": [...]}`); a bare array is accepted too so the
// client keeps working if paging is ever dropped server-side.
func (c *PropertiesClient) Search(ctx context.Context, filters domain.PropertySearch) ([]domain.Property, error) {
	query := url.Values{}
	if filters.City != "" {
		query.Set("city", filters.City)
	}
	if filters.MinPrice > 0 {
		query.Set("minPrice", strconv.FormatFloat(filters.MinPrice, 'f', -1, 64))
	}
	if filters.MaxPrice > 0 {
		query.Set("maxPrice", strconv.FormatFloat(filters.MaxPrice, 'f', -1, 64))
	}
	if filters.Bedrooms > 0 {
		query.Set("bedrooms", strconv.Itoa(filters.Bedrooms))
	}
	if filters.PropertyType != "" {
		query.Set("propertyType", string(filters.PropertyType))
	}
	if filters.Page > 0 {
		query.Set("page", strconv.Itoa(filters.Page))
	}
	if filters.Size > 0 {
		query.Set("size", strconv.Itoa(filters.Size))
	}
	if filters.SortBy != "" {
		query.Set("sortBy", filters.SortBy)
	}
	if filters.SortDir != "" {
		query.Set("sortDir", filters.SortDir)
	}

	var raw json.RawMessage
	if err := c.gw.Send(ctx, "GET", "/api/properties/search", query, nil, &raw); err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var props []domain.Property
		if err := json.Unmarshal(trimmed, &props); err != nil {
			return nil, &gateway.Error{Kind: gateway.KindServer, Message: fmt.Sprintf("decode search response: %v", err)}
		}
		return props, nil
	}

	var page struct {
		Content []domain.Property `json:"content"`
	}
	if err := json.Unmarshal(trimmed, &page); err != nil {
		return nil, &gateway.Error{Kind: gateway.KindServer, Message: fmt.Sprintf("decode search response: %v", err)}
	}
	return page.Content, nil
}

func (c *PropertiesClient) Create(ctx context.Context, req PropertyRequest) (*domain.Property, error) {
	var prop domain.Property
	if err := c.gw.Send(ctx, "POST", "/api/properties", nil, req, &prop); err != nil {
		return nil, err
	}
	return &prop, nil
}

func (c *PropertiesClient) Update(ctx context.Context, id int64, req PropertyRequest) (*domain.Property, error) {
	var prop domain.Property
	if err := c.gw.Send(ctx, "PUT", fmt.Sprintf("/api/properties/%d", id), nil, req, &prop); err != nil {
		return nil, err
	}
	return &prop, nil
}

func (c *PropertiesClient) SetAvailability(ctx context.Context, id int64, available bool) (*domain.Property, error) {
	query := url.Values{"available": {strconv.FormatBool(available)}}
	var prop domain.Property
	if err := c.gw.Send(ctx, "PUT", fmt.Sprintf("/api/properties/%d/availability", id), query, nil, &prop); err != nil {
		return nil, err
	}
	return &prop, nil
}

func (c *PropertiesClient) Delete(ctx context.Context, id int64) error {
	return c.gw.Send(ctx, "DELETE", fmt.Sprintf("/api/properties/%d", id), nil, nil, nil)
}
