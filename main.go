package main

import "github.com/hurou927/spam-graph/cmd"

func main() {
	cmd.Execute()
}
