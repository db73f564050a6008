package main

import "github.com/xvierd/pomotray/cmd"

func main() {
	cmd.Execute()
}
