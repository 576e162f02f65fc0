package main

import "grindstone/cmd/grind/root"

func main() {
	root.Execute()
}
