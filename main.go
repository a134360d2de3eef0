package main

import "github.com/authorshaven/content/cmd"

func main() {
	cmd.Execute()
}
