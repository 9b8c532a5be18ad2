package main

import "reelgrab/cmd"

func main() {
	cmd.Execute()
}
