package main

import (
	"github.com/kakao/chward/internal/flags"
)

var (
	flagPath    = flags.Path()
	flagTimeout = flags.Timeout()
	flagPretty  = flags.PrettyPrint()
	flagVerbose = flags.FlagDesc{
		Name:  "verbose",
		Envs:  []string{"VERBOSE"},
		Usage: "Log at debug level.",
	}
)
