package main

import (
	"github.com/NVIDIA/cookbook/pkg/cli"
)

func main() {
	cli.Execute()
}
