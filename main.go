package main

import "github.com/Aidix21/Conf-SH-A-R-Pr4/cmd"

var version = "v0.1.0"

func main() {
	cmd.Execute(version)
}
