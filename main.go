package main

import "github.com/killallgit/qagen/cmd"

func main() {
	cmd.Execute()
}
