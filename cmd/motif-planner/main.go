package main

import "github.com/andrescamacho/motif-planner/internal/adapters/cli"

func main() {
	cli.Execute()
}
