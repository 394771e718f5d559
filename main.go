package main

import "github.com/lukman83/widgetapps/cmd"

func main() {
	cmd.Execute()
}
