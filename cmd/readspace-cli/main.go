package main

import "readspace/cmd/readspace-cli/cmd"

func main() {
	cmd.Execute()
}
