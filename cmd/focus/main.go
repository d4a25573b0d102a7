package main

import (
	"github.com/focusengine/dietitian-focus/pkg/cli"
)

func main() {
	cli.Execute()
}
