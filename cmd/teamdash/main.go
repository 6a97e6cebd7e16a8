package main

import (
	"flag"

	"kyri56xcaesar/teamdash/internal/server"
)

func main() {
	confPath := flag.String("config", ".env", "path to the env configuration file")
	flag.Parse()

	server.InitAndServe(*confPath)
}
