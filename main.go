package main

import "github.com/nvr-ai/go-imaging/cmd"

func main() {
	cmd.Execute()
}
