package main

import "inventory-audit/cmd"

func main() {
	cmd.Execute()
}
