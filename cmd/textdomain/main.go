package main

import "github.com/goliatone/go-textdomain/internal/cli"

func main() {
	cli.Execute()
}
