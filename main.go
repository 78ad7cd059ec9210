package main

import "github.com/gnames/gnplet/cmd"

func main() {
	cmd.Execute()
}
