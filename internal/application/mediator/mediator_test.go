package mediator_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/motif-planner/internal/application/mediator"
)

type pingQuery struct{ Value string }

type pongResponse struct{ Value string }

type pingHandler struct{}

func (h *pingHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	q, ok := request.(*pingQuery)
	if !ok {
		return nil, errors.New("invalid request type")
	}
	return &pongResponse{Value: q.Value}, nil
}

func TestMediator_SendDispatchesByType(t *testing.T) {
	// Arrange
	m := mediator.NewMediator()
	require.NoError(t, mediator.RegisterHandler[*pingQuery](m, &pingHandler{}))

	// Act
	resp, err := m.Send(context.Background(), &pingQuery{Value: "hi"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, &pongResponse{Value: "hi"}, resp)
}

func TestMediator_RegisterRejectsDuplicatesAndNil(t *testing.T) {
	m := mediator.NewMediator()

	require.NoError(t, mediator.RegisterHandler[*pingQuery](m, &pingHandler{}))
	assert.Error(t, mediator.RegisterHandler[*pingQuery](m, &pingHandler{}))
	assert.Error(t, m.Register(nil, &pingHandler{}))
	assert.Error(t, m.Register(reflect.TypeOf(&pongResponse{}), nil))
}

func TestMediator_SendErrors(t *testing.T) {
	m := mediator.NewMediator()

	_, err := m.Send(context.Background(), nil)
	assert.Error(t, err)

	_, err = m.Send(context.Background(), &pingQuery{})
	assert.ErrorContains(t, err, "no handler registered")
}

func TestMediator_MiddlewareOrder(t *testing.T) {
	// Arrange
	m := mediator.NewMediator()
	require.NoError(t, mediator.RegisterHandler[*pingQuery](m, &pingHandler{}))

	var calls []string
	trace := func(name string) mediator.Middleware {
		return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
			calls = append(calls, name+":before")
			resp, err := next(ctx, request)
			calls = append(calls, name+":after")
			return resp, err
		}
	}
	m.RegisterMiddleware(trace("outer"))
	m.RegisterMiddleware(trace("inner"))
	m.RegisterMiddleware(nil)

	// Act
	_, err := m.Send(context.Background(), &pingQuery{Value: "x"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"outer:before", "inner:before", "inner:after", "outer:after"}, calls)
}

func TestMediator_MiddlewareCanShortCircuit(t *testing.T) {
	m := mediator.NewMediator()
	require.NoError(t, mediator.RegisterHandler[*pingQuery](m, &pingHandler{}))
	m.RegisterMiddleware(func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		return nil, errors.New("blocked")
	})

	_, err := m.Send(context.Background(), &pingQuery{})

	assert.EqualError(t, err, "blocked")
}
