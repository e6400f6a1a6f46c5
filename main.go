package main

import "github.com/chriserin/cukenav/cmd"

func main() {
	cmd.Execute()
}
