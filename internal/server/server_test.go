package server

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/BloggingApp/vanguard/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShutdownBeforeRun(t *testing.T) {
	srv := New(config.ServerConfig{Port: "0", Handler: http.NotFoundHandler()})

	require.NoError(t, srv.Shutdown(context.Background()))

	done := make(chan error, 1)
	go func() { done <- srv.Run() }()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run kept serving after Shutdown")
	}
}

func TestShutdownStopsRun(t *testing.T) {
	srv := New(config.ServerConfig{Port: "0", Handler: http.NotFoundHandler()})

	done := make(chan error, 1)
	go func() { done <- srv.Run() }()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run kept serving after Shutdown")
	}
}
