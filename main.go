package main

import "github.com/backlogbot/backlog-bot/cmd"

func main() {
	cmd.Execute()
}
