package main

import "github.com/jhoicas/cpc-api/cmd/cpcctl/commands"

func main() {
	commands.Execute()
}
