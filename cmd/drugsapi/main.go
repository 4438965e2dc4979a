package main

import (
	"context"
	"log"

	"github.com/smartrx/smartrx/internal/drugsapi/bootstrap"
)

func main() {
	ctx := context.Background()
	runtime, err := bootstrap.NewRuntime(ctx, "configs/drugsapi.yaml")
	if err != nil {
		log.Fatalf("bootstrap drugs api: %v", err)
	}
	if err := runtime.Run(ctx); err != nil {
		log.Fatalf("run drugs api: %v", err)
	}
}
