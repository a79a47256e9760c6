// Command fakeapi serves the in-memory backend API for local development.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dmitrijs2005/sessionkeeper/internal/fakeapi"
	"github.com/dmitrijs2005/sessionkeeper/internal/logging"
)

func main() {

	addr := flag.String("a", ":8080", "listen address")
	secret := flag.String("s", "default-secret-key", "token signing secret")
	origins := flag.String("o", "http://localhost:3000", "comma-separated CORS origins")
	level := flag.String("l", "info", "log level")
	seed := flag.String("seed", "", "account to create at startup as email:name:password")
	flag.Parse()

	logger := logging.New(os.Stdout, *level)

	srv := fakeapi.New(
		fakeapi.WithSecret(*secret),
		fakeapi.WithAllowedOrigins(strings.Split(*origins, ",")...),
		fakeapi.WithLogger(logger),
	)

	if *seed != "" {
		parts := strings.SplitN(*seed, ":", 3)
		if len(parts) != 3 {
			log.Fatalf("seed must be email:name:password")
		}
		if _, err := srv.Seed(parts[0], parts[1], parts[2]); err != nil {
			log.Fatalf("seed: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	if err := srv.Run(ctx, *addr); err != nil {
		log.Fatalf("%v", err)
	}

}
