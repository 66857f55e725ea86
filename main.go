package main

import "pricing-modeller/cmd"

func main() {
	cmd.Execute()
}
