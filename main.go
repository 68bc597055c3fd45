package main

import "marc/cmd"

func main() {
	cmd.Execute()
}
