// Package boilerplate carries the plugin host protocol: one JSON request
// in on stdin, one JSON response out on stdout.
package boilerplate

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	cerrors "github.com/superblocksteam/gsheets/go/connector-errors"
)

// Operations the host may request.
const (
	OpSpec      = "spec"
	OpTest      = "test"
	OpMetadata  = "metadata"
	OpPreDelete = "preDelete"
	OpExecute   = "execute"
)

// Request is one invocation from the host. The datasource configuration
// carries credentials; the action configuration carries the loosely-typed
// per-operation properties.
type Request struct {
	Operation               string          `json:"operation"`
	DatasourceConfiguration json.RawMessage `json:"datasourceConfiguration,omitempty"`
	ActionConfiguration     map[string]any  `json:"actionConfiguration,omitempty"`
}

// Response is the single reply written for a Request. Exactly one of Data
// and Error is populated; no partial results accompany a failure.
type Response struct {
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

// Connector is the surface a plugin exposes to the host.
type Connector interface {
	Spec(ctx context.Context) (any, error)
	Test(ctx context.Context, datasource json.RawMessage) error
	Metadata(ctx context.Context, datasource json.RawMessage) (any, error)
	PreDelete(ctx context.Context, datasource json.RawMessage) error
	Execute(ctx context.Context, datasource json.RawMessage, action map[string]any) (any, error)
}

// RunMain is the boilerplate main function of a connector plugin.
func RunMain(connector Connector) {
	switch format := getEnvDefault("LOG_FORMAT", "color"); format {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	case "text":
		log.SetFormatter(&log.TextFormatter{})
	case "color":
		log.SetFormatter(&log.TextFormatter{ForceColors: true})
	default:
		log.WithField("format", format).Fatal("invalid LOG_FORMAT (expected 'json', 'text', or 'color')")
	}

	if lvl, err := log.ParseLevel(getEnvDefault("LOG_LEVEL", "info")); err != nil {
		log.WithFields(log.Fields{"level": lvl, "error": err}).Fatal("unrecognized log level")
	} else {
		log.SetLevel(lvl)
	}

	var ctx, _ = signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)

	var request Request
	if err := json.NewDecoder(bufio.NewReader(os.Stdin)).Decode(&request); err != nil {
		cerrors.HandleFinalError(fmt.Errorf("decoding request: %w", err))
	}

	var response = Serve(ctx, connector, &request)
	if err := writeResponse(os.Stdout, response); err != nil {
		cerrors.HandleFinalError(err)
	}
	os.Exit(0)
}

// Serve dispatches one host request to the connector.
func Serve(ctx context.Context, connector Connector, request *Request) *Response {
	log.WithField("operation", request.Operation).Debug("dispatching request")

	var data any
	var err error
	switch request.Operation {
	case OpSpec:
		data, err = connector.Spec(ctx)
	case OpTest:
		err = connector.Test(ctx, request.DatasourceConfiguration)
	case OpMetadata:
		data, err = connector.Metadata(ctx, request.DatasourceConfiguration)
	case OpPreDelete:
		err = connector.PreDelete(ctx, request.DatasourceConfiguration)
	case OpExecute:
		data, err = connector.Execute(ctx, request.DatasourceConfiguration, request.ActionConfiguration)
	default:
		err = fmt.Errorf("invalid operation %q", request.Operation)
	}

	if err != nil {
		var fields = log.Fields{
			"operation": request.Operation,
			"error":     err,
		}
		// A user-facing error reads as its short message; the underlying
		// cause goes to the log only.
		var userErr *cerrors.UserError
		if errors.As(err, &userErr) {
			fields["source"] = userErr.Source()
		}
		log.WithFields(fields).Error("request failed")
		return &Response{Error: err.Error()}
	}
	return &Response{Data: data}
}

func writeResponse(w io.Writer, response *Response) error {
	var out = bufio.NewWriter(w)
	if err := json.NewEncoder(out).Encode(response); err != nil {
		return fmt.Errorf("encoding response: %w", err)
	}
	return out.Flush()
}

func getEnvDefault(name, def string) string {
	var s = os.Getenv(name)
	if s == "" {
		return def
	}
	return s
}
