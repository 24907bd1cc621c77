package main

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"go.creack.net/breakout/game"
	"go.creack.net/breakout/scene"
	"go.creack.net/breakout/spectate"
)

func TestSimulateStreamsFrames(t *testing.T) {
	hub := spectate.NewHub()
	srv := httptest.NewServer(hub)
	defer srv.Close()
	defer hub.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("Dial: %s", err)
	}
	defer func() { _ = conn.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	sc := scene.New(game.NewRound(game.DefaultConfig(), nil))
	go func() {
		defer close(done)
		simulate(ctx, sc, hub, 120)
	}()

	// The autopilot starts a round on the first tick, look for a running snapshot.
	var started bool
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	for !started {
		_, buf, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("Read: %s", err)
		}
		st, err := spectate.DecodeFrame(buf)
		if err != nil {
			t.Fatalf("Decode: %s", err)
		}
		m := st.AsMap()
		started = m["type"] == spectate.FrameSnapshot && m["started"] == true
	}

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("simulate did not stop on cancel")
	}
}
