package main

import "github.com/Rorical/RoriStake/cmd"

func main() {
	cmd.Execute()
}
