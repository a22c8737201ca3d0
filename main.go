package main

import (
	"campus-event-system/cmd/server"
)

func main() {
	server.Init()
	defer server.Shutdown()
	server.Run()
}
