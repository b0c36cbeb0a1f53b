package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/twinsight/dashboard-auth/internal/server"
	"github.com/twinsight/dashboard-auth/internal/server/config"
)

func main() {

	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if errors.Is(err, config.ErrConfigCreated) {
		path, _ := config.DefaultFilePath()
		fmt.Printf("Created configuration template at %s, fill it in and restart.\n", path)
		return
	}
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}
