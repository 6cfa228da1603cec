package main

import "github.com/rootslab/opsfinance/cmd"

func main() {
	cmd.Execute()
}
