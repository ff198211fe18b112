package main

import (
	"github.com/ssargent/cinedb/cmd/cinedb/cmd"
	"github.com/ssargent/cinedb/pkg/di"
)

func main() {
	// Initialize dependency injection container
	container := di.NewContainer()

	// Inject dependencies into cmd package
	cmd.SetContainer(container)

	cmd.Execute()
}
