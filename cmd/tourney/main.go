package main

import "github.com/mcoot/tourneytrack/internal/cli"

func main() {
	cli.Execute()
}
