package main

import "github.com/asaiko/voicetrim/cmd/voicetrim/cmd"

func main() {
	cmd.Execute()
}
