package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	stdnet "net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"IshiGrid/internal/config"
	"IshiGrid/internal/net"
	"IshiGrid/internal/state"
	"IshiGrid/internal/ui"
)

const usage = `usage:
  ishigrid [-config file]             desktop editor
  ishigrid serve [-config file]       headless WebSocket editor
  ishigrid discover [-timeout d]      list editors on the local network
`

func main() {
	cmd := "desktop"
	args := os.Args[1:]
	if len(args) > 0 && (args[0] == "serve" || args[0] == "discover") {
		cmd, args = args[0], args[1:]
	}

	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	fs.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	configPath := fs.String("config", "", "path to a TOML configuration file")
	timeout := fs.Duration("timeout", 3*time.Second, "how long discover waits for answers")
	_ = fs.Parse(args)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	setupLogging(cfg)

	switch cmd {
	case "serve":
		runServer(cfg)
	case "discover":
		runDiscover(*timeout)
	default:
		log.Println("Starting desktop editor")
		ui.RunApp(cfg)
	}
}

func setupLogging(cfg config.Config) {
	level, _ := cfg.Log.SlogLevel() // validated by config.Load
	state.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func runServer(cfg config.Config) {
	log.Println("Starting headless editor")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ln, err := stdnet.Listen("tcp", cfg.Server.Listen)
	if err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
	port := net.PortOf(ln.Addr())

	if cfg.Server.Advertise {
		adv, err := net.Advertise(cfg.Server.Instance, port)
		if err != nil {
			log.Printf("mDNS advertisement disabled: %v", err)
		} else {
			defer adv.Close()
			log.Printf("Advertising %s on port %d", net.ServiceType, port)
		}
	}

	log.Printf("Front ends can connect to %s", net.ConnectURL(port))

	if err := net.NewServer(cfg).Serve(ctx, ln); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
	log.Println("Server stopped")
}

func runDiscover(timeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout+time.Second)
	defer cancel()

	found := 0
	err := net.Browse(ctx, timeout, func(e net.Editor) {
		found++
		fmt.Printf("%s\t%s\n", e.Name, e.URL())
	})
	if err != nil {
		log.Fatalf("Discovery failed: %v", err)
	}
	if found == 0 {
		log.Println("No editors found")
	}
}
