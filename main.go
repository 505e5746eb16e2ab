package main

import "github.com/finvoice/dashboard/cmd"

func main() {
	cmd.Execute()
}
