package main

import "ph_calc/cmd"

func main() {
	cmd.Execute()
}
