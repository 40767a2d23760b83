package main

import "github.com/jonkarrer/brize/internal/cli"

func main() {
	cli.Execute()
}
