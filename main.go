package main

import "github.com/querylab/typesig/cmd"

func main() {
	cmd.Execute()
}
