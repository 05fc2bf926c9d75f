package main

import "github.com/Draft-Lab/panela-tracker/internal/cli"

func main() {
	cli.Execute()
}
