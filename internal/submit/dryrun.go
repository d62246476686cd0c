package submit

import (
	"context"
	"net/http"
	"sync"

	"github.com/oakwood-commons/hris/internal/routes"
	"github.com/oakwood-commons/hris/pkg/logger"
)

// DryRunSubmitter records submissions instead of sending them. Route names
// are still resolved so a typo fails the same way it would against a server.
type DryRunSubmitter struct {
	routes *routes.Table

	mu   sync.Mutex
	sent []Request
}

// NewDryRunSubmitter builds a dry-run submitter over table.
func NewDryRunSubmitter(table *routes.Table) *DryRunSubmitter {
	return &DryRunSubmitter{routes: table}
}

// Submit logs and records req.
func (d *DryRunSubmitter) Submit(ctx context.Context, req Request) (Response, error) {
	path := ""
	if d.routes != nil {
		p, err := d.routes.URL(req.Route, req.Params)
		if err != nil {
			return Response{}, err
		}
		path = p
	}
	logger.FromContext(ctx).Info("dry run: form not sent",
		logger.RouteKey, req.Route, "path", path, "fields", len(req.Form))

	d.mu.Lock()
	d.sent = append(d.sent, req)
	d.mu.Unlock()
	return Response{Status: http.StatusOK, Message: "Dry run: nothing was sent."}, nil
}

// Sent returns the recorded submissions.
func (d *DryRunSubmitter) Sent() []Request {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Request(nil), d.sent...)
}

// Close is a no-op.
func (d *DryRunSubmitter) Close() error { return nil }
