package main

import "github.com/jasonaaronwilson/armyknife-scheme/cmd"

func main() {
	cmd.Execute()
}
