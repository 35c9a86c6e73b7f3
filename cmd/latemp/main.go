package main

import "github.com/frickiericker/latemp/cmd"

func main() {
	cmd.Execute()
}
