package main

import (
	"fmt"

	storegin "github.com/fwojciec/storescope/gin"
)

// Run executes the serve command. It blocks until the context is cancelled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	server := storegin.NewServer(c.Addr, deps.Insights, deps.Logger)
	server.Reports = deps.Reports

	fmt.Fprintf(deps.Stdout, "Serving insights API on %s\n", c.Addr)
	return server.Run(deps.Ctx)
}
