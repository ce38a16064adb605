package main

import "github.com/mumoshu/pipeline/cmd"

func main() {
	cmd.MustRun()
}
