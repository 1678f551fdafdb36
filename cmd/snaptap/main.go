package main

import (
	"github.com/larsks/snaptap/internal/cli"
	"github.com/larsks/snaptap/internal/interceptor"
)

func main() {
	cli.StandardMain(
		func() cli.Configurable { return interceptor.NewConfig() },
		interceptor.NewHandler(),
	)
}
