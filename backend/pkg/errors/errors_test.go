package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsErrorType(t *testing.T) {
	driverErr := stderrors.New("connection refused")

	tests := []struct {
		name    string
		err     error
		errType ErrorType
		want    bool
	}{
		{name: "nil", err: nil, errType: ErrorTypeGraph, want: false},
		{name: "plain error", err: driverErr, errType: ErrorTypeGraph, want: false},
		{name: "base error", err: NewBaseError(ErrorTypeConfig, "bad", nil), errType: ErrorTypeConfig, want: true},
		{name: "typed graph error", err: NewGraphConnectionFailed("bolt://x", driverErr), errType: ErrorTypeGraph, want: true},
		{name: "typed error other type", err: NewGraphQueryFailed("MATCH", driverErr), errType: ErrorTypeConfig, want: false},
		{name: "wrapped typed error", err: fmt.Errorf("fetch EN vocabulary: %w", NewConfigMissingRequired("NEO4J_URI")), errType: ErrorTypeConfig, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsErrorType(tt.err, tt.errType))
		})
	}
}

func TestTypedErrorsUnwrapToCause(t *testing.T) {
	cause := stderrors.New("auth failure")
	err := fmt.Errorf("open: %w", NewGraphConnectionFailed("neo4j://db", cause))

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "[graph] failed to connect to Neo4j: neo4j://db: auth failure")

	var connErr *ErrGraphConnectionFailed
	assert.ErrorAs(t, err, &connErr)
	assert.Equal(t, "neo4j://db", connErr.URI)
}

func TestIsRetryable(t *testing.T) {
	cause := stderrors.New("boom")

	assert.True(t, IsRetryable(NewGraphConnectionFailed("bolt://x", cause)))
	assert.False(t, IsRetryable(NewGraphQueryFailed("MATCH", cause)))
	assert.False(t, IsRetryable(NewConfigMissingRequired("NEO4J_URI")))
	assert.False(t, IsRetryable(NewContextCancelled("fetch", cause)))
	assert.False(t, IsRetryable(cause))
}
