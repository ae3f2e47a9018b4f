package main

import (
	"github.com/ParthJhaveri10/Lumeo/cmd"
)

func main() {
	cmd.Execute()
}
