package main

import (
	"os"

	"github.com/GoEduAdmin/GoEduAdmin/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
