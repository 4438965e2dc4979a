package main

import (
	"context"
	"log"

	"github.com/smartrx/smartrx/internal/web/bootstrap"
)

func main() {
	ctx := context.Background()
	runtime, err := bootstrap.NewRuntime(ctx, "configs/web.yaml")
	if err != nil {
		log.Fatalf("bootstrap web front end: %v", err)
	}
	if err := runtime.Run(ctx); err != nil {
		log.Fatalf("run web front end: %v", err)
	}
}
