package main

import "github.com/apexsigns/signcalc/cmd"

func main() {
	cmd.Execute()
}
