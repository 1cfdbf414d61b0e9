package main

import "github.com/yogat3ch/30-day-scheduler/cmd"

func main() {
	cmd.Execute()
}
