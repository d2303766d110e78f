package main

import "support-desk-api/config"

func main() {
	config.RunServer()
}
