package main

import "github.com/iksnae/uicopy/cmd"

func main() {
	cmd.Execute()
}
