package main

import (
	"github.com/skaffio/skaff/internal/cli"
)

func main() {
	cli.Execute()
}
