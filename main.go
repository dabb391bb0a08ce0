package main

import "github.com/frahmantamala/airline-admin/cmd"

func main() {
	cmd.Execute()
}
