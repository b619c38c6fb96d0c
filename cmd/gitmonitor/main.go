package main

import "github.com/vanpelt/gitmonitor/internal/cmd"

func main() {
	cmd.Execute()
}
