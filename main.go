package main

import "sahne-client/cli"

func main() {
	cli.Execute()
}
