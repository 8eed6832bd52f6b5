package main

import "github.com/helpinghands-foundation/hhf/cmd/hhfctl/cmd"

func main() {
	cmd.Execute()
}
