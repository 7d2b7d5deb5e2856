package main

import "tasknote/cmd/tasknote-cli/cmd"

func main() {
	cmd.Execute()
}
