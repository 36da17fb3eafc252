package main

import (
	"context"
	"fmt"

	"github.com/fopmanager/fop-api/api"
)

// startup is called at application startup
func main() {
	ctx := context.Background()
	// Start backend server
	if err := api.RunServer(ctx); err != nil {
		fmt.Printf("Failed to start backend server: %v\n", err)
	}
}
