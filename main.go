package main

import "github.com/KaramelBytes/datainsights/cmd"

func main() {
	cmd.Execute()
}
