package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.creack.net/breakout/cli"
	"go.creack.net/breakout/game"
	"go.creack.net/breakout/scene"
	"go.creack.net/breakout/spectate"
)

const defaultListen = ":8080"

// simulate runs the autopilot until ctx is done. It is the only goroutine
// touching the round.
func simulate(ctx context.Context, sc *scene.Scene, hub *spectate.Hub, tps int) {
	pilot := &scene.Autopilot{Scene: sc}
	r := sc.Round

	period := time.Second / time.Duration(tps)
	dt := period.Seconds()
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		pilot.Drive()
		sc.Step(dt)

	drain:
		for {
			select {
			case msg := <-r.Messages:
				if msg.Type != game.MsgNudge {
					log.Printf("[%s] %s", msg.Type, msg.Message)
				}
				buf, err := spectate.EncodeMessage(msg)
				if err != nil {
					log.Printf("Failed to encode message: %s", err)
					continue
				}
				hub.Broadcast(buf)
			default:
				break drain
			}
		}

		buf, err := spectate.EncodeSnapshot(r.Snapshot())
		if err != nil {
			log.Printf("Failed to encode snapshot: %s", err)
			continue
		}
		hub.Broadcast(buf)
	}
}

func main() {
	cfg, opts, err := cli.ParseConfig(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("Failed to parse CLI config: %s.", err)
	}
	if opts.DumpConfig {
		if err := cli.WriteConfig(os.Stdout, cfg); err != nil {
			log.Fatalf("Failed to dump config: %s.", err)
		}
		return
	}
	if opts.Listen == "" {
		opts.Listen = defaultListen
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := spectate.NewHub()
	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "ok, %d spectators\n", hub.Len())
	})
	srv := &http.Server{
		Addr:              opts.Listen,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("Serving spectators on %s/ws", opts.Listen)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to serve: %s.", err)
		}
	}()

	simulate(ctx, scene.New(game.NewRound(cfg, opts.Rand())), hub, opts.TPS)

	hub.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown: %s", err)
	}
	log.Printf("Done")
}
