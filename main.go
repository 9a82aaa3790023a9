package main

import "github.com/livecube/livecube/cmd"

func main() {
	cmd.Execute()
}
