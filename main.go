package main

import "github.com/quietdesk/cockpit/cmd"

func main() {
	cmd.Execute()
}
