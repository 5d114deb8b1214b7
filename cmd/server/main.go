package main

import "ardhi/internal/app"

// @title           Ardhi Land Marketplace API
// @version         1.0
// @description     REST API для купли-продажи земельных участков.
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
func main() {
	app.Run()
}
