package supabase

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/agrox/fieldops/internal/backend"
)

// SelectByOwner runs GET /rest/v1/{table} filtered by owner and ordered.
func (c *Client) SelectByOwner(ctx context.Context, q backend.Query) ([]backend.Row, error) {
	params := url.Values{}
	if len(q.Columns) > 0 {
		params.Set("select", strings.Join(q.Columns, ","))
	} else {
		params.Set("select", "*")
	}
	if q.OwnerColumn != "" {
		params.Set(q.OwnerColumn, "eq."+q.OwnerID.String())
	}
	if q.OrderColumn != "" {
		direction := "asc"
		if q.Descending {
			direction = "desc"
		}
		params.Set("order", q.OrderColumn+"."+direction)
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}

	req, err := c.newRequest(ctx, http.MethodGet, "/rest/v1/"+url.PathEscape(q.Table)+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var rows []backend.Row
	if err := c.do(req, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// Insert runs POST /rest/v1/{table} and returns the stored row.
func (c *Client) Insert(ctx context.Context, table string, row backend.Row) (backend.Row, error) {
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/rest/v1/"+url.PathEscape(table), row)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Prefer", "return=representation")

	var rows []backend.Row
	if err := c.do(req, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("supabase: insert into %s returned no row", table)
	}
	return rows[0], nil
}

// CallRPC runs POST /rest/v1/rpc/{fn} and discards the result.
func (c *Client) CallRPC(ctx context.Context, fn string, args map[string]any) error {
	if args == nil {
		args = map[string]any{}
	}
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/rest/v1/rpc/"+url.PathEscape(fn), args)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}
