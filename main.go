package main

import "guesslex/cmd"

func main() {
	cmd.Execute()
}
