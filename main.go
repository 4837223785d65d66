package main

import "printstore/internal/app"

// @title           Printstore API
// @version         1.0
// @description     Online print-shop catalog and ordering backend.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
func main() {
	app.Run()
}
