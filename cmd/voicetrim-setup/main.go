package main

import "github.com/asaiko/voicetrim/cmd/voicetrim-setup/cmd"

func main() {
	cmd.Execute()
}
