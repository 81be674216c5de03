package main

import "solestore/cmd/shop/commands"

func main() {
	commands.Execute()
}
