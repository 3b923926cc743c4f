package client

import (
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/oms-project/omsctl/internal/common/omserrors"
)

const (
	DefaultTimeout  = 10 * time.Second
	DefaultRetryMax = 3
)

type ApiConnectionDetails struct {
	// Base url of the OMS core API, e.g. https://my.oms.example/services/oms-core-elixir/api
	OmsUrl string
	// Token sent verbatim in the X-Auth-Token header
	Token string
	// Allow plain http for hosts other than localhost
	ForceNoTls bool
	// Per-request timeout
	Timeout time.Duration
	// Number of retries of idempotent requests (GET, PUT, DELETE) on connection errors and 5xx responses
	RetryMax int
}

type ConnectionDetails func() *ApiConnectionDetails

// ClientProvider returns the client shared by all API calls of one command invocation.
type ClientProvider func() (*RestClient, error)

// NewClientProvider returns a ClientProvider that builds its client from getConnectionDetails on first use.
// Connection details are resolved lazily because commands only load their configuration in PreRunE.
func NewClientProvider(getConnectionDetails ConnectionDetails) ClientProvider {
	var once sync.Once
	var c *RestClient
	var err error
	return func() (*RestClient, error) {
		once.Do(func() {
			c, err = NewRestClient(getConnectionDetails())
		})
		return c, err
	}
}

func (details *ApiConnectionDetails) Validate() error {
	if details.OmsUrl == "" {
		return errors.WithStack(&omserrors.ErrInvalidArgument{
			Name:    "omsUrl",
			Value:   details.OmsUrl,
			Message: "not provided",
		})
	}
	u, err := url.Parse(details.OmsUrl)
	if err != nil || u.Host == "" {
		return errors.WithStack(&omserrors.ErrInvalidArgument{
			Name:    "omsUrl",
			Value:   details.OmsUrl,
			Message: "not an absolute url",
		})
	}
	if u.Scheme == "http" && !details.ForceNoTls && !isLocalhost(u.Hostname()) {
		return errors.WithStack(&omserrors.ErrInvalidArgument{
			Name:    "omsUrl",
			Value:   details.OmsUrl,
			Message: "plain http is only allowed for localhost unless forceNoTls is set",
		})
	}
	if details.RetryMax < 0 {
		return errors.WithStack(&omserrors.ErrInvalidArgument{
			Name:    "retryMax",
			Value:   details.RetryMax,
			Message: "must not be negative",
		})
	}
	return nil
}

func isLocalhost(host string) bool {
	return host == "localhost" || host == "127.0.0.1" || host == "::1" || strings.HasSuffix(host, ".localhost")
}

func newRetryableClient(details *ApiConnectionDetails, retryMax int) *retryablehttp.Client {
	c := retryablehttp.NewClient()
	c.RetryMax = retryMax
	c.RetryWaitMin = 200 * time.Millisecond
	c.RetryWaitMax = 2 * time.Second
	c.Logger = &leveledLogger{entry: log.WithField("component", "http")}
	// Return the last response instead of a generic "giving up" error, so that its status can be mapped.
	c.ErrorHandler = retryablehttp.PassthroughErrorHandler

	timeout := details.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c.HTTPClient.Timeout = timeout
	return c
}

// leveledLogger adapts logrus to retryablehttp.LeveledLogger. Per-attempt chatter is logged at debug level.
type leveledLogger struct {
	entry *log.Entry
}

func (l *leveledLogger) fields(keysAndValues []interface{}) *log.Entry {
	fields := log.Fields{}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		if key, ok := keysAndValues[i].(string); ok {
			fields[key] = keysAndValues[i+1]
		}
	}
	return l.entry.WithFields(fields)
}

func (l *leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.fields(keysAndValues).Error(msg)
}

func (l *leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.fields(keysAndValues).Debug(msg)
}

func (l *leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.fields(keysAndValues).Debug(msg)
}

func (l *leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.fields(keysAndValues).Warn(msg)
}
