package main

import "github.com/helpinghands-foundation/hhf/cmd/hhfapi/cmd"

func main() {
	cmd.Execute()
}
