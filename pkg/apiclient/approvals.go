package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// ApprovalRequest is one proposed status change and its decision state.
type ApprovalRequest struct {
	ID              string    `json:"id"`
	EntityKind      string    `json:"entityKind"`
	EntityID        string    `json:"entityId"`
	RequestedBy     string    `json:"requestedBy"`
	RequestedStatus string    `json:"requestedStatus"`
	ApprovalStatus  string    `json:"approvalStatus"`
	ApprovedBy      *string   `json:"approvedBy,omitempty"`
	RejectedBy      *string   `json:"rejectedBy,omitempty"`
	Comment         *string   `json:"comment,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// StatusChangeResult reports whether a requested status change applied
// immediately or was queued for approval.
type StatusChangeResult struct {
	Applied bool             `json:"applied"`
	Request *ApprovalRequest `json:"request,omitempty"`
}

// ChangePropertyStatus asks the server to move a property to status. Whether
// it applies directly or queues an approval request depends on the caller's
// role.
func (c *Client) ChangePropertyStatus(ctx context.Context, propertyID, status, comment string) (*StatusChangeResult, error) {
	return c.changeStatus(ctx, fmt.Sprintf("/properties/%s/status", propertyID), status, comment)
}

// ChangeLeadStatus asks the server to move a lead to status.
func (c *Client) ChangeLeadStatus(ctx context.Context, leadID, status, comment string) (*StatusChangeResult, error) {
	return c.changeStatus(ctx, fmt.Sprintf("/leads/%s/status", leadID), status, comment)
}

func (c *Client) changeStatus(ctx context.Context, path, status, comment string) (*StatusChangeResult, error) {
	body := map[string]string{"status": status}
	if comment != "" {
		body["comment"] = comment
	}

	var out StatusChangeResult
	if err := c.PostJSON(ctx, path, body, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// ListPendingPropertyRequests returns property approval requests still
// awaiting a decision, oldest first.
func (c *Client) ListPendingPropertyRequests(ctx context.Context) ([]ApprovalRequest, error) {
	return c.listRequests(ctx, "/property-requests/pending")
}

// ListArchivedPropertyRequests returns decided property approval requests,
// most recently decided first.
func (c *Client) ListArchivedPropertyRequests(ctx context.Context) ([]ApprovalRequest, error) {
	return c.listRequests(ctx, "/property-requests/archive")
}

// ListPendingLeadRequests returns lead approval requests still awaiting a
// decision, oldest first.
func (c *Client) ListPendingLeadRequests(ctx context.Context) ([]ApprovalRequest, error) {
	return c.listRequests(ctx, "/lead-requests/pending")
}

// ListArchivedLeadRequests returns decided lead approval requests, most
// recently decided first.
func (c *Client) ListArchivedLeadRequests(ctx context.Context) ([]ApprovalRequest, error) {
	return c.listRequests(ctx, "/lead-requests/archive")
}

func (c *Client) listRequests(ctx context.Context, path string) ([]ApprovalRequest, error) {
	var out []ApprovalRequest
	if err := c.GetJSON(ctx, path, &out); err != nil {
		return nil, err
	}

	return out, nil
}

// ApprovePropertyRequest approves a pending property request, applying the
// requested status to the property.
func (c *Client) ApprovePropertyRequest(ctx context.Context, requestID string) (*ApprovalRequest, error) {
	return c.decideRequest(ctx, fmt.Sprintf("/property-requests/%s/approve", requestID))
}

// RejectPropertyRequest rejects a pending property request; the property
// keeps its current status.
func (c *Client) RejectPropertyRequest(ctx context.Context, requestID string) (*ApprovalRequest, error) {
	return c.decideRequest(ctx, fmt.Sprintf("/property-requests/%s/reject", requestID))
}

// ApproveLeadRequest approves a pending lead request.
func (c *Client) ApproveLeadRequest(ctx context.Context, requestID string) (*ApprovalRequest, error) {
	return c.decideRequest(ctx, fmt.Sprintf("/lead-requests/%s/approve", requestID))
}

// RejectLeadRequest rejects a pending lead request.
func (c *Client) RejectLeadRequest(ctx context.Context, requestID string) (*ApprovalRequest, error) {
	return c.decideRequest(ctx, fmt.Sprintf("/lead-requests/%s/reject", requestID))
}

func (c *Client) decideRequest(ctx context.Context, path string) (*ApprovalRequest, error) {
	var out ApprovalRequest
	if err := c.do(ctx, http.MethodPatch, path, nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}
