package main

import "berkotech.co/particlecorr/cmd"

func main() {
	cmd.Execute()
}
