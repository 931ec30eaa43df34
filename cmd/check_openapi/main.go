package main

import (
	"fmt"
	"os"

	"gamegen/internal/apispec"
	"gamegen/internal/server"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <openapi.yaml>\n", os.Args[0])
		os.Exit(2)
	}
	doc, err := apispec.Load(os.Args[1])
	if err != nil {
		exitErr(err)
	}
	if err := apispec.Check(doc, server.Contract()); err != nil {
		exitErr(err)
	}
	fmt.Println("OpenAPI consistency check passed.")
}

func exitErr(err error) {
	fmt.Fprintln(os.Stderr, err.Error())
	os.Exit(1)
}
