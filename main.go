package main

import "github.com/dpsn-ai/deepsense-chat/cmd"

func main() {
	cmd.Execute()
}
