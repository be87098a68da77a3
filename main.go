package main

import "courseplanner/cmd"

func main() {
	cmd.Execute()
}
