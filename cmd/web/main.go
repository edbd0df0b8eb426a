package main

import "uploadhub_backend/internal/app"

func main() {
	app.Run()
}
