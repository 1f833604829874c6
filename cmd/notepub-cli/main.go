package main

import "notepub/cmd/notepub-cli/cmd"

func main() {
	cmd.Execute()
}
