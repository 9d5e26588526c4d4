// @title           Glbiashara Media API
// @version         1.0
// @description     Authenticated media upload and delete endpoints for Glbiashara.
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization

package main

import "glbiashara_backend/internal/app"

func main() {
	app.Run()
}
