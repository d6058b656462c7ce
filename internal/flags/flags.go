package flags

import (
	"time"

	"github.com/urfave/cli/v2"
)

type FlagDesc struct {
	Name        string
	Aliases     []string
	Usage       string
	Envs        []string
	DefaultText string
}

func (fd *FlagDesc) DurationFlag(required bool, defaultValue time.Duration) *cli.DurationFlag {
	return &cli.DurationFlag{
		Name:        fd.Name,
		Aliases:     fd.Aliases,
		Usage:       fd.Usage,
		EnvVars:     fd.Envs,
		Required:    required,
		Value:       defaultValue,
		DefaultText: fd.DefaultText,
	}
}

func (fd *FlagDesc) StringFlag(required bool, defaultValue string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:        fd.Name,
		Aliases:     fd.Aliases,
		Usage:       fd.Usage,
		EnvVars:     fd.Envs,
		Required:    required,
		Value:       defaultValue,
		DefaultText: fd.DefaultText,
	}
}

func (fd *FlagDesc) BoolFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:        fd.Name,
		Aliases:     fd.Aliases,
		Usage:       fd.Usage,
		EnvVars:     fd.Envs,
		DefaultText: fd.DefaultText,
	}
}

func Path() *FlagDesc {
	return &FlagDesc{
		Name:    "path",
		Aliases: []string{"p"},
		Envs:    []string{"CHWARD_PATH"},
		Usage:   "Directory holding the deployment directory.",
	}
}

func Timeout() *FlagDesc {
	return &FlagDesc{
		Name:  "timeout",
		Envs:  []string{"CHWARD_TIMEOUT"},
		Usage: "Overall timeout of the command. No timeout if zero.",
	}
}

func PrettyPrint() *FlagDesc {
	return &FlagDesc{
		Name:  "pretty",
		Usage: "Indent JSON output.",
	}
}
