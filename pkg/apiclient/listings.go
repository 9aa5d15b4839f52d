package apiclient

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// Property is a listed real-estate unit as the API reports it.
type Property struct {
	ID        string    `json:"id"`
	Reference string    `json:"reference"`
	Title     string    `json:"title"`
	OwnerName string    `json:"ownerName"`
	Price     int64     `json:"price"`
	Status    string    `json:"status"`
	AgentID   string    `json:"agentId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Lead is a prospective contact as the API reports it.
type Lead struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Source    string    `json:"source"`
	Status    string    `json:"status"`
	AgentID   string    `json:"agentId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ListQuery controls pagination and ordering of listing queries. Zero values
// fall back to server defaults.
type ListQuery struct {
	Offset  int
	Limit   int
	SortBy  string
	SortDir string
}

func (q ListQuery) encode() string {
	values := url.Values{}
	if q.Offset > 0 {
		values.Set("offset", strconv.Itoa(q.Offset))
	}
	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.SortBy != "" {
		values.Set("sortBy", q.SortBy)
	}
	if q.SortDir != "" {
		values.Set("sortDir", q.SortDir)
	}

	if len(values) == 0 {
		return ""
	}

	return "?" + values.Encode()
}

// PropertyPage is one page of properties plus the unpaged total.
type PropertyPage struct {
	Items []Property `json:"items"`
	Total int64      `json:"total"`
}

// LeadPage is one page of leads plus the unpaged total.
type LeadPage struct {
	Items []Lead `json:"items"`
	Total int64  `json:"total"`
}

// ListProperties returns a page of properties.
func (c *Client) ListProperties(ctx context.Context, query ListQuery) (*PropertyPage, error) {
	var out PropertyPage
	if err := c.GetJSON(ctx, "/properties"+query.encode(), &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// GetProperty returns one property by ID.
func (c *Client) GetProperty(ctx context.Context, propertyID string) (*Property, error) {
	var out Property
	if err := c.GetJSON(ctx, fmt.Sprintf("/properties/%s", propertyID), &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// ListLeads returns a page of leads.
func (c *Client) ListLeads(ctx context.Context, query ListQuery) (*LeadPage, error) {
	var out LeadPage
	if err := c.GetJSON(ctx, "/leads"+query.encode(), &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// GetLead returns one lead by ID.
func (c *Client) GetLead(ctx context.Context, leadID string) (*Lead, error) {
	var out Lead
	if err := c.GetJSON(ctx, fmt.Sprintf("/leads/%s", leadID), &out); err != nil {
		return nil, err
	}

	return &out, nil
}
