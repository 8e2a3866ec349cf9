package boilerplate

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

type stubConnector struct {
	executed map[string]any
	fail     bool
}

func (s *stubConnector) Spec(context.Context) (any, error) {
	return map[string]string{"kind": "spec"}, nil
}

func (s *stubConnector) Test(context.Context, json.RawMessage) error {
	if s.fail {
		return fmt.Errorf("connection refused")
	}
	return nil
}

func (s *stubConnector) Metadata(context.Context, json.RawMessage) (any, error) {
	return []string{"one", "two"}, nil
}

func (s *stubConnector) PreDelete(context.Context, json.RawMessage) error {
	return nil
}

func (s *stubConnector) Execute(_ context.Context, _ json.RawMessage, action map[string]any) (any, error) {
	s.executed = action
	return "done", nil
}

func TestServeDispatch(t *testing.T) {
	t.Parallel()

	var ctx = context.Background()
	var stub = &stubConnector{}

	response := Serve(ctx, stub, &Request{Operation: OpSpec})
	require.Empty(t, response.Error)
	require.Equal(t, map[string]string{"kind": "spec"}, response.Data)

	response = Serve(ctx, stub, &Request{Operation: OpTest})
	require.Empty(t, response.Error)
	require.Nil(t, response.Data)

	response = Serve(ctx, stub, &Request{
		Operation:           OpExecute,
		ActionConfiguration: map[string]any{"action": "READ"},
	})
	require.Empty(t, response.Error)
	require.Equal(t, "done", response.Data)
	require.Equal(t, map[string]any{"action": "READ"}, stub.executed)

	response = Serve(ctx, stub, &Request{Operation: "bogus"})
	require.Contains(t, response.Error, `invalid operation "bogus"`)
}

func TestServeFailureCarriesNoData(t *testing.T) {
	t.Parallel()

	response := Serve(context.Background(), &stubConnector{fail: true}, &Request{Operation: OpTest})
	require.Equal(t, "connection refused", response.Error)
	require.Nil(t, response.Data)
}
