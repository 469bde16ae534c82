// Command gemctl manages Agentspace engines and data stores through the
// Discovery Engine API.
package main

import "github.com/custodia-labs/gemctl/internal/adapters/driving/cli"

func main() {
	cli.Execute()
}
