package main

import "thescent/internal/app"

// @title           The Scent API
// @version         1.0
// @description     Storefront API for The Scent: catalog, scent finder, cart, wishlist, checkout and account management.
// @BasePath        /
func main() {
	app.Run()
}
