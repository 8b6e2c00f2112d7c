package main

import "docseek/cmd"

func main() {
	cmd.Execute()
}
