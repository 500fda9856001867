package main

import "github.com/plasmasim/gopic/cmd"

func main() {
	cmd.Execute()
}
