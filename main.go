package main

import "github.com/KaramelBytes/housedash/cmd"

func main() {
	cmd.Execute()
}
