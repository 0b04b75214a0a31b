package main

import "github.com/klytics/xlsq/cmd"

func main() {
	cmd.Execute()
}
