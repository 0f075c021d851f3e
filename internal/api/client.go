package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/fleetdeck/fleetdeck/internal/diff"
)

// Client exposes the per-entity read/create/update/delete operations on top
// of the Gateway. It performs no validation of its own; create/update
// payloads are expected to have passed client-side schema validation before
// they reach it.
type Client struct {
	gw *Gateway
}

// NewClient wraps a Gateway.
func NewClient(gw *Gateway) *Client {
	return &Client{gw: gw}
}

// Gateway returns the underlying gateway, e.g. for the loading signal.
func (c *Client) Gateway() *Gateway { return c.gw }

// ListQuery carries the list request parameters. Filters are encoded one
// parameter per key, values comma-joined; the search text is sent under the
// selected field's own parameter name.
type ListQuery struct {
	Page        int
	PageSize    int
	SearchField string
	SearchText  string
	Filters     map[string][]string
}

func (q ListQuery) values() url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		v.Set("size", strconv.Itoa(q.PageSize))
	}
	if field, text := strings.TrimSpace(q.SearchField), strings.TrimSpace(q.SearchText); field != "" && text != "" {
		v.Set(field, text)
	}
	for key, selected := range q.Filters {
		if len(selected) > 0 {
			v.Set(key, strings.Join(selected, ","))
		}
	}
	return v
}

// ListCompanies fetches one page of companies.
func (c *Client) ListCompanies(ctx context.Context, q ListQuery) (*CompanyList, error) {
	var payload CompanyList
	rel := &url.URL{Path: KindCompany.Path(), RawQuery: q.values().Encode()}
	if err := c.gw.Send(ctx, "GET", rel, nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// ListUsers fetches one page of users.
func (c *Client) ListUsers(ctx context.Context, q ListQuery) (*UserList, error) {
	var payload UserList
	rel := &url.URL{Path: KindUser.Path(), RawQuery: q.values().Encode()}
	if err := c.gw.Send(ctx, "GET", rel, nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// ListVehicles fetches one page of vehicles.
func (c *Client) ListVehicles(ctx context.Context, q ListQuery) (*VehicleList, error) {
	var payload VehicleList
	rel := &url.URL{Path: KindVehicle.Path(), RawQuery: q.values().Encode()}
	if err := c.gw.Send(ctx, "GET", rel, nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// ListPage is the kind-agnostic projection of a list response the console
// renders.
type ListPage struct {
	Items     []Summary
	Paginator Paginator
}

// List fetches one page of the given kind and projects it onto summaries.
func (c *Client) List(ctx context.Context, kind Kind, q ListQuery) (*ListPage, error) {
	switch kind {
	case KindCompany:
		resp, err := c.ListCompanies(ctx, q)
		if err != nil {
			return nil, err
		}
		page := &ListPage{Paginator: resp.Paginator}
		for _, company := range resp.Companies {
			page.Items = append(page.Items, company.Summary())
		}
		return page, nil
	case KindUser:
		resp, err := c.ListUsers(ctx, q)
		if err != nil {
			return nil, err
		}
		page := &ListPage{Paginator: resp.Paginator}
		for _, user := range resp.Users {
			page.Items = append(page.Items, user.Summary())
		}
		return page, nil
	case KindVehicle:
		resp, err := c.ListVehicles(ctx, q)
		if err != nil {
			return nil, err
		}
		page := &ListPage{Paginator: resp.Paginator}
		for _, vehicle := range resp.Vehicles {
			page.Items = append(page.Items, vehicle.Summary())
		}
		return page, nil
	}
	return nil, fmt.Errorf("unknown entity kind %d", kind)
}

// GetCompany fetches a single company by id.
func (c *Client) GetCompany(ctx context.Context, id string) (*Company, error) {
	var payload companyEnvelope
	if err := c.get(ctx, KindCompany, id, &payload); err != nil {
		return nil, err
	}
	return &payload.Company, nil
}

// GetUser fetches a single user by id.
func (c *Client) GetUser(ctx context.Context, id string) (*User, error) {
	var payload userEnvelope
	if err := c.get(ctx, KindUser, id, &payload); err != nil {
		return nil, err
	}
	return &payload.User, nil
}

// GetVehicle fetches a single vehicle by id.
func (c *Client) GetVehicle(ctx context.Context, id string) (*Vehicle, error) {
	var payload vehicleEnvelope
	if err := c.get(ctx, KindVehicle, id, &payload); err != nil {
		return nil, err
	}
	return &payload.Vehicle, nil
}

// GetSnapshot fetches an entity and returns its editable fields; edit
// dialogs use it to seed both the original and working snapshots.
func (c *Client) GetSnapshot(ctx context.Context, kind Kind, id string) (diff.Snapshot, error) {
	switch kind {
	case KindCompany:
		company, err := c.GetCompany(ctx, id)
		if err != nil {
			return nil, err
		}
		return company.Snapshot(), nil
	case KindUser:
		user, err := c.GetUser(ctx, id)
		if err != nil {
			return nil, err
		}
		return user.Snapshot(), nil
	case KindVehicle:
		vehicle, err := c.GetVehicle(ctx, id)
		if err != nil {
			return nil, err
		}
		return vehicle.Snapshot(), nil
	}
	return nil, fmt.Errorf("unknown entity kind %d", kind)
}

// Create posts a full new-entity payload. Any binary asset travels inside
// the payload as a base64 data URI, not as a multipart stream.
func (c *Client) Create(ctx context.Context, kind Kind, payload map[string]any) error {
	var result MutationResult
	rel := &url.URL{Path: kind.Path()}
	return c.gw.Send(ctx, "POST", rel, payload, &result)
}

// Update patches an entity with the diff engine's sparse modified-fields
// payload; it never sends the full record.
func (c *Client) Update(ctx context.Context, kind Kind, id string, changed map[string]any) error {
	var result MutationResult
	rel := &url.URL{Path: kind.Path() + "/" + url.PathEscape(id)}
	return c.gw.Send(ctx, "PATCH", rel, changed, &result)
}

// Delete removes an entity. A not-found failure is an expected outcome here,
// another operator may have deleted the record first, so the gateway stays
// quiet about it; callers treat it as an already-done deletion and refresh
// their list instead of failing hard.
func (c *Client) Delete(ctx context.Context, kind Kind, id string) error {
	rel := &url.URL{Path: kind.Path() + "/" + url.PathEscape(id)}
	return c.gw.Send(ctx, "DELETE", rel, nil, nil, QuietStatus(http.StatusNotFound))
}

func (c *Client) get(ctx context.Context, kind Kind, id string, dest any) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%s id required", strings.ToLower(kind.Label()))
	}
	rel := &url.URL{Path: kind.Path() + "/" + url.PathEscape(id)}
	return c.gw.Send(ctx, "GET", rel, nil, dest)
}
