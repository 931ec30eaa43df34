package main

import "gamegen/internal/cli"

func main() {
	cli.Execute()
}
