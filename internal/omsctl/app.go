package omsctl

import (
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/oms-project/omsctl/internal/common/batch"
	"github.com/oms-project/omsctl/pkg/client"
	"github.com/oms-project/omsctl/pkg/client/body"
	"github.com/oms-project/omsctl/pkg/client/circle"
	"github.com/oms-project/omsctl/pkg/client/joinrequest"
	"github.com/oms-project/omsctl/pkg/client/member"
)

type App struct {
	// Parameters passed to the CLI by the user.
	Params *Params
	// Out is used to write the output. Defaults to standard out,
	// but can be overridden in tests to make assertions on the applications's output.
	Out io.Writer
	// In is read by interactive commands. Defaults to standard in.
	In io.Reader
	// Registry holds the metrics of this invocation, e.g. batch import outcomes.
	Registry *prometheus.Registry
	Metrics  *batch.Metrics
}

// Params struct holds all user-customizable parameters.
// Using a single struct for all CLI commands ensures that all flags are distinct
// and that they can be provided either dynamically on a command line, or
// statically in a config file that's reused between command runs.
type Params struct {
	ApiConnectionDetails *client.ApiConnectionDetails

	BodyAPI        *BodyAPI
	MemberAPI      *MemberAPI
	JoinRequestAPI *JoinRequestAPI
	CircleAPI      *CircleAPI
}

// Each API struct holds the functions used to talk to one kind of OMS resource.
// They are set in the PreRunE of the cobra commands, so tests can replace them.

type BodyAPI struct {
	Create body.CreateAPI
	Get    body.GetAPI
	Update body.UpdateAPI
	Delete body.DeleteAPI
	List   body.ListAPI
}

type MemberAPI struct {
	Create member.CreateAPI
	Join   member.JoinAPI
	List   member.ListAPI
	Update member.UpdateAPI
	Delete member.DeleteAPI
}

type JoinRequestAPI struct {
	List    joinrequest.ListAPI
	Process joinrequest.ProcessAPI
}

type CircleAPI struct {
	Create circle.CreateAPI
	Search circle.SearchAPI
}

// New instantiates an App with default parameters, including standard output and input.
func New() *App {
	registry := prometheus.NewRegistry()
	return &App{
		Params: &Params{
			BodyAPI:        &BodyAPI{},
			MemberAPI:      &MemberAPI{},
			JoinRequestAPI: &JoinRequestAPI{},
			CircleAPI:      &CircleAPI{},
		},
		Out:      os.Stdout,
		In:       os.Stdin,
		Registry: registry,
		Metrics:  batch.NewMetrics(registry),
	}
}
