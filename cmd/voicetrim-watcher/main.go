package main

import "github.com/asaiko/voicetrim/cmd/voicetrim-watcher/cmd"

func main() {
	cmd.Execute()
}
