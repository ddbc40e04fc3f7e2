package main

import "github.com/calmhq/calm-cli/internal/cli"

func main() {
	cli.Execute()
}
