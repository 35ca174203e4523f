package main

import (
	"github.com/nward/homerestore/cmd"
)

func main() {
	cmd.Execute()
}
