package main

import "github.com/0glabs/0g-provider-router/cmd"

func main() {
	cmd.Execute()
}
