package main

import (
	"github/splitpot/go-relay/cmd"
)

func main() {
	cmd.Execute()
}
