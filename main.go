package main

import "rvm/cmd"

func main() {
	cmd.Execute()
}
