package main

import (
	"context"
	"log"

	"github.com/smartrx/smartrx/internal/authapi/bootstrap"
)

func main() {
	ctx := context.Background()
	runtime, err := bootstrap.NewRuntime(ctx, "configs/authapi.yaml")
	if err != nil {
		log.Fatalf("bootstrap auth api: %v", err)
	}
	if err := runtime.Run(ctx); err != nil {
		log.Fatalf("run auth api: %v", err)
	}
}
