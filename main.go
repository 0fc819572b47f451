package main

import "github.com/snyk-tim/uv/cmd"

func main() {
	cmd.Execute()
}
