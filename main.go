package main

import "github.com/coldshrine/calorista/cmd"

func main() {
	cmd.Execute()
}
