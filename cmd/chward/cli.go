package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/kakao/chward/internal/buildinfo"
	"github.com/kakao/chward/internal/chwardctl"
	"github.com/kakao/chward/internal/chwardctl/cluster"
	"github.com/kakao/chward/internal/chwardctl/node"
	"github.com/kakao/chward/internal/flags"
	"github.com/kakao/chward/pkg/types"
)

const appName = "chward"

func newChwardApp() *cli.App {
	buildInfo := buildinfo.ReadVersionInfo()
	cli.VersionPrinter = func(c *cli.Context) {
		_, _ = fmt.Fprintln(c.App.Writer, buildInfo.String())
	}
	return &cli.App{
		Name:    appName,
		Usage:   "manage a localhost ClickHouse cluster and its keeper ensemble",
		Version: buildInfo.Version,
		Commands: []*cli.Command{
			newGenConfigCommand(),
			newDeployCommand(),
			newTeardownCommand(),
			newShowCommand(),
			newAddKeeperCommand(),
			newRemoveKeeperCommand(),
			newAddServerCommand(),
			newRemoveServerCommand(),
			newKeeperConfigCommand(),
			newAuditCommand(),
		},
	}
}

func commonFlags(fs ...cli.Flag) []cli.Flag {
	common := []cli.Flag{
		flags.Settings,
		flags.ClusterName,
		flags.Executable,
		flags.DeploymentDir,
		flagTimeout.DurationFlag(false, 0),
		flagPretty.BoolFlag(),
		flagVerbose.BoolFlag(),
	}
	common = append(common, flags.LoggerFlags()...)
	return append(common, fs...)
}

// action returns a command action running the function built by newFunc.
func action(newFunc func(c *cli.Context) (chwardctl.ExecuteFunc, error)) cli.ActionFunc {
	return func(c *cli.Context) error {
		if c.NArg() > 0 {
			return errors.Errorf("%s: unexpected args: %v", c.Command.Name, c.Args().Slice())
		}
		f, err := newFunc(c)
		if err != nil {
			return err
		}
		return execute(c, f)
	}
}

func newGenConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "gen-config",
		Usage: "generate the configurations of a new cluster without starting it",
		Action: action(func(c *cli.Context) (chwardctl.ExecuteFunc, error) {
			return cluster.Generate(c.Int(flags.NumKeepers.Name), c.Int(flags.NumReplicas.Name)), nil
		}),
		Flags: commonFlags(
			flagPath.StringFlag(true, ""),
			flags.NumKeepers,
			flags.NumReplicas,
		),
	}
}

func newDeployCommand() *cli.Command {
	return &cli.Command{
		Name:  "deploy",
		Usage: "start every keeper and server of a generated cluster",
		Action: action(func(*cli.Context) (chwardctl.ExecuteFunc, error) {
			return cluster.Deploy(), nil
		}),
		Flags: commonFlags(flagPath.StringFlag(true, "")),
	}
}

func newTeardownCommand() *cli.Command {
	return &cli.Command{
		Name:  "teardown",
		Usage: "stop every keeper and server",
		Action: action(func(*cli.Context) (chwardctl.ExecuteFunc, error) {
			return cluster.Teardown(), nil
		}),
		Flags: commonFlags(flagPath.StringFlag(true, "")),
	}
}

func newShowCommand() *cli.Command {
	return &cli.Command{
		Name:    "show",
		Aliases: []string{"show-topology"},
		Usage:   "print the topology",
		Action: action(func(*cli.Context) (chwardctl.ExecuteFunc, error) {
			return cluster.Show(), nil
		}),
		Flags: commonFlags(flagPath.StringFlag(true, "")),
	}
}

func newAddKeeperCommand() *cli.Command {
	return &cli.Command{
		Name:  "add-keeper",
		Usage: "add a keeper to the ensemble",
		Action: action(func(*cli.Context) (chwardctl.ExecuteFunc, error) {
			return node.AddKeeper(), nil
		}),
		Flags: commonFlags(flagPath.StringFlag(true, "")),
	}
}

func newRemoveKeeperCommand() *cli.Command {
	return &cli.Command{
		Name:  "remove-keeper",
		Usage: "remove a keeper from the ensemble",
		Action: action(func(c *cli.Context) (chwardctl.ExecuteFunc, error) {
			return node.RemoveKeeper(types.KeeperID(c.Int(flags.GetNodeIDFlag().Name))), nil
		}),
		Flags: commonFlags(
			flagPath.StringFlag(true, ""),
			flags.GetNodeIDFlag(),
		),
	}
}

func newAddServerCommand() *cli.Command {
	return &cli.Command{
		Name:  "add-server",
		Usage: "add a ClickHouse server to the cluster",
		Action: action(func(*cli.Context) (chwardctl.ExecuteFunc, error) {
			return node.AddServer(), nil
		}),
		Flags: commonFlags(flagPath.StringFlag(true, "")),
	}
}

func newRemoveServerCommand() *cli.Command {
	return &cli.Command{
		Name:  "remove-server",
		Usage: "remove a ClickHouse server from the cluster",
		Action: action(func(c *cli.Context) (chwardctl.ExecuteFunc, error) {
			return node.RemoveServer(types.ServerID(c.Int(flags.GetNodeIDFlag().Name))), nil
		}),
		Flags: commonFlags(
			flagPath.StringFlag(true, ""),
			flags.GetNodeIDFlag(),
		),
	}
}

func newKeeperConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "keeper-config",
		Usage: "print the ensemble membership seen by a keeper",
		Action: action(func(c *cli.Context) (chwardctl.ExecuteFunc, error) {
			return node.KeeperConfig(types.KeeperID(c.Int(flags.GetNodeIDFlag().Name))), nil
		}),
		Flags: commonFlags(
			flagPath.StringFlag(false, "."),
			flags.GetNodeIDFlag(),
		),
	}
}

func newAuditCommand() *cli.Command {
	return &cli.Command{
		Name:  "audit",
		Usage: "compare the ensemble membership seen by a keeper with the topology",
		Action: action(func(c *cli.Context) (chwardctl.ExecuteFunc, error) {
			return cluster.Audit(types.KeeperID(c.Int(flags.GetNodeIDFlag().Name))), nil
		}),
		Flags: commonFlags(
			flagPath.StringFlag(true, ""),
			flags.GetNodeIDFlag(),
		),
	}
}
