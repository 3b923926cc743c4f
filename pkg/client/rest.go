package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/oms-project/omsctl/internal/common/omscontext"
	"github.com/oms-project/omsctl/internal/common/omserrors"
	"github.com/oms-project/omsctl/internal/common/requestid"
)

const AuthTokenHeader = "X-Auth-Token"

// RestClient talks to the OMS core REST API. It is safe for concurrent use.
//
// Idempotent requests go through a client that retries; POST requests never do, since a create that
// timed out after reaching the server must not be sent twice.
type RestClient struct {
	baseUrl  *url.URL
	token    string
	retrying *retryablehttp.Client
	single   *retryablehttp.Client
}

func NewRestClient(details *ApiConnectionDetails) (*RestClient, error) {
	if err := details.Validate(); err != nil {
		return nil, err
	}
	baseUrl, err := url.Parse(strings.TrimSuffix(details.OmsUrl, "/"))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &RestClient{
		baseUrl:  baseUrl,
		token:    details.Token,
		retrying: newRetryableClient(details, details.RetryMax),
		single:   newRetryableClient(details, 0),
	}, nil
}

// Request describes one call against the API.
type Request struct {
	Method string
	// Path relative to the API base url, e.g. "/bodies/42"
	Path  string
	Query url.Values
	// Body is encoded as JSON if not nil
	Body interface{}
	// Type and id of the addressed resource, used to report 404s
	ResourceType string
	ResourceId   string
}

func (r Request) action() string {
	return fmt.Sprintf("%s %s", r.Method, r.Path)
}

// envelope is the wrapper OMS core puts around every successful response.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// loggerFrom returns the logger carried by ctx, or the standard logger if it carries none.
func loggerFrom(ctx context.Context) *log.Entry {
	if octx, ok := ctx.(*omscontext.Context); ok && octx.Log != nil {
		return octx.Log
	}
	return log.NewEntry(log.StandardLogger())
}

// Do sends r and decodes the "data" member of the response into out, unless out is nil or the response
// carries no data. Unsuccessful responses are returned as omserrors types.
func (c *RestClient) Do(ctx context.Context, r Request, out interface{}) error {
	req, err := c.newRequest(ctx, r)
	if err != nil {
		return err
	}
	id := requestid.SetHeader(req.Request)
	logger := loggerFrom(ctx).WithFields(log.Fields{"requestId": id, "action": r.action()})

	httpClient := c.retrying
	if r.Method == http.MethodPost {
		httpClient = c.single
	}

	logger.Debug("sending request")
	resp, err := httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "error sending %s", r.action())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrapf(err, "error reading response to %s", r.action())
	}
	logger.WithField("status", resp.StatusCode).Debug("received response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return omserrors.FromResponse(resp.StatusCode, body, r.action(), r.ResourceType, r.ResourceId)
	}
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return errors.Wrapf(err, "error decoding response to %s", r.action())
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return errors.Wrapf(err, "error decoding data of response to %s", r.action())
	}
	return nil
}

func (c *RestClient) newRequest(ctx context.Context, r Request) (*retryablehttp.Request, error) {
	u := *c.baseUrl
	u.Path = u.Path + r.Path
	u.RawQuery = r.Query.Encode()

	var body interface{}
	if r.Body != nil {
		payload, err := json.Marshal(r.Body)
		if err != nil {
			return nil, errors.Wrapf(err, "error encoding payload of %s", r.action())
		}
		body = payload
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, r.Method, u.String(), body)
	if err != nil {
		return nil, errors.Wrapf(err, "error creating request %s", r.action())
	}
	req.Header.Set("Accept", "application/json")
	if r.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set(AuthTokenHeader, c.token)
	}
	return req, nil
}

// Paging is the query shared by every listing endpoint.
type Paging struct {
	Query  string
	Limit  int
	Offset int
}

func (p Paging) Values() url.Values {
	v := url.Values{}
	if p.Query != "" {
		v.Set("query", p.Query)
	}
	if p.Limit > 0 {
		v.Set("limit", fmt.Sprint(p.Limit))
	}
	if p.Offset > 0 {
		v.Set("offset", fmt.Sprint(p.Offset))
	}
	return v
}
