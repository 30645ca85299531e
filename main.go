package main

import "github.com/agentic-research/examine/cmd"

func main() {
	cmd.Execute()
}
