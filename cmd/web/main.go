package main

import "reachiq/internal/app"

func main() {
	app.Run()
}
