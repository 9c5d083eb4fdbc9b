package main

import "github.com/surveyops/triage/cmd"

func main() {
	cmd.Execute()
}
