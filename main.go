package main

import "github.com/superbmd/bmd-cli/cmd"

func main() {
	cmd.Execute()
}
