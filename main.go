package main

import "itemgroups/questionnaire/cmd"

func main() {
	cmd.Execute()
}
