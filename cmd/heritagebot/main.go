package main

import "github.com/indiverse/heritagebot/internal/cli"

func main() {
	cli.Execute()
}
