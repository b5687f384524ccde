package main

import "github.com/mouse-blink/covmap/cmd"

func main() {
	cmd.Execute()
}
