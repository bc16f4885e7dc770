package main

import "github.com/mahfuzhasan/officer-registry/cmd"

func main() {
	cmd.Execute()
}
