package main

import "github.com/kommunalcrm/treasury/cmd"

func main() {
	cmd.Execute()
}
