package flags

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/kakao/chward/pkg/types"
)

const (
	CategoryDeployment = "Deployment:"

	DefaultNumKeepers  = 3
	DefaultNumReplicas = 2
)

var (
	NumKeepers = &cli.IntFlag{
		Name:     "num-keepers",
		Aliases:  []string{"keepers"},
		Category: CategoryDeployment,
		EnvVars:  []string{"NUM_KEEPERS"},
		Value:    DefaultNumKeepers,
		Usage:    "Number of keepers of a generated cluster.",
		Action: func(_ *cli.Context, value int) error {
			if value < 1 {
				return fmt.Errorf("invalid value \"%d\" for flag --num-keepers", value)
			}
			return nil
		},
	}

	NumReplicas = &cli.IntFlag{
		Name:     "num-replicas",
		Aliases:  []string{"replicas"},
		Category: CategoryDeployment,
		EnvVars:  []string{"NUM_REPLICAS"},
		Value:    DefaultNumReplicas,
		Usage:    "Number of ClickHouse servers of a generated cluster.",
		Action: func(_ *cli.Context, value int) error {
			if value < 1 {
				return fmt.Errorf("invalid value \"%d\" for flag --num-replicas", value)
			}
			return nil
		},
	}

	// Settings is a flag specifying the YAML settings file of a deployment.
	Settings = &cli.StringFlag{
		Name:     "settings",
		Category: CategoryDeployment,
		EnvVars:  []string{"CHWARD_SETTINGS"},
		Usage:    "YAML settings file. Built-in defaults if not set.",
	}

	ClusterName = &cli.StringFlag{
		Name:     "cluster-name",
		Category: CategoryDeployment,
		EnvVars:  []string{"CLUSTER_NAME"},
		Usage:    "Cluster name in remote_servers and macros. Overrides the settings file.",
	}

	Executable = &cli.StringFlag{
		Name:     "executable",
		Aliases:  []string{"clickhouse"},
		Category: CategoryDeployment,
		EnvVars:  []string{"CLICKHOUSE_EXECUTABLE"},
		Usage:    "Path to the clickhouse binary. Overrides the settings file.",
	}

	DeploymentDir = &cli.StringFlag{
		Name:     "deployment-dir",
		Category: CategoryDeployment,
		EnvVars:  []string{"DEPLOYMENT_DIR"},
		Usage:    "Name of the deployment directory under --path. Overrides the settings file.",
	}
)

// GetNodeIDFlag returns a flag for specifying the ID of a keeper or a
// ClickHouse server. Users can modify the returned flag without affecting
// other commands.
func GetNodeIDFlag() *cli.IntFlag {
	return &cli.IntFlag{
		Name:     "id",
		Category: CategoryDeployment,
		EnvVars:  []string{"NODE_ID"},
		Usage:    "Keeper or server ID",
		Required: true,
		Action: func(_ *cli.Context, value int) error {
			if value < int(types.MinKeeperID) || value > int(types.MaxKeeperID) {
				return fmt.Errorf("invalid value \"%d\" for flag --id", value)
			}
			return nil
		},
	}
}
