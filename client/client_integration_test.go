// client_integration_test.go
//go:build integration
// +build integration

package client

import (
	"context"
	"net/http"
	"testing"
)

var c = Client{
	Addr:     "http://localhost:3333",
	BasePath: "/api",
	Client:   http.Client{},
}

func TestPingRunningService(t *testing.T) {
	if s, err := c.Ping(context.Background()); err != nil || s != "pong" {
		t.Fail()
	}
}
