package main

import "github.com/nfrund/onlinehelp/cmd/helpctl/cmd"

func main() {
	cmd.Execute()
}
