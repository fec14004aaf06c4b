// Package main provides the bgcatlas CLI application.
package main

import "github.com/canerbagci/bgcatlas/cmd"

func main() {
	cmd.Execute()
}
