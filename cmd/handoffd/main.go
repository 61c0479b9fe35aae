package main

import "github.com/handoff-labs/handoff/cmd/handoffd/cmd"

func main() {
	cmd.Execute()
}
