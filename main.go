package main

import (
	"gitlab.com/system76/power-management-service/cmd"
)

func main() {
	cmd.Execute()
}
