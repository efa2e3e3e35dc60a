package main

import "github.com/mcpforge/mcpforge/cmd"

func main() {
	cmd.Execute()
}
