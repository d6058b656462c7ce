package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/kakao/chward/internal/chwardctl/result"
	"github.com/kakao/chward/internal/placement"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func runChward(t *testing.T, args ...string) (result.Result, error) {
	t.Helper()
	var out bytes.Buffer
	app := newChwardApp()
	app.Writer = &out
	app.ErrWriter = io.Discard
	err := app.Run(append([]string{appName}, append(args, "--loglevel", "error")...))

	// Usage errors print help instead of a result.
	var res result.Result
	if json.Valid(out.Bytes()) {
		require.NoError(t, json.Unmarshal(out.Bytes(), &res))
	}
	return res, err
}

func TestGenConfigAndShow(t *testing.T) {
	path := t.TempDir()

	res, err := runChward(t, "gen-config", "--path", path, "--num-keepers", "3", "--num-replicas", "2")
	require.NoError(t, err)
	require.Equal(t, "report", res.Data.Kind)

	root := filepath.Join(path, "deployment")
	for _, name := range []string{
		filepath.Join("keeper-1", placement.KeeperConfigFileName),
		filepath.Join("keeper-3", placement.KeeperConfigFileName),
		filepath.Join("clickhouse-2", placement.ServerConfigFileName),
		"clickward-metadata.json",
	} {
		require.FileExists(t, filepath.Join(root, name))
	}

	res, err = runChward(t, "show", "--path", path)
	require.NoError(t, err)
	require.Equal(t, "topology", res.Data.Kind)
	item, ok := res.GetDataItem(0)
	require.True(t, ok)
	topo := item.(map[string]any)
	require.Equal(t, []any{float64(1), float64(2), float64(3)}, topo["keeper_ids"])
	require.Equal(t, float64(2), topo["max_server_id"])
}

func TestRemoveUnknownNode(t *testing.T) {
	path := t.TempDir()
	_, err := runChward(t, "gen-config", "--path", path, "--num-keepers", "1", "--num-replicas", "1")
	require.NoError(t, err)

	res, err := runChward(t, "remove-keeper", "--path", path, "--id", "7")
	require.ErrorContains(t, err, "keeper 7")
	require.Error(t, res.Err())

	_, err = runChward(t, "remove-server", "--path", path, "--id", "0")
	require.Error(t, err)
}

func TestAddServerSpawnFailure(t *testing.T) {
	path := t.TempDir()
	_, err := runChward(t, "gen-config", "--path", path, "--num-keepers", "1", "--num-replicas", "1")
	require.NoError(t, err)

	// The new server is persisted and configured before it fails to start.
	_, err = runChward(t, "add-server", "--path", path, "--executable", filepath.Join(path, "no-clickhouse"))
	require.ErrorContains(t, err, "start clickhouse-2")
	require.ErrorContains(t, err, "persist topology")

	res, err := runChward(t, "show", "--path", path)
	require.NoError(t, err)
	item, _ := res.GetDataItem(0)
	require.Equal(t, []any{float64(1), float64(2)}, item.(map[string]any)["server_ids"])
	require.FileExists(t, filepath.Join(path, "deployment", "clickhouse-2", placement.ServerConfigFileName))
}

func TestNoDeployment(t *testing.T) {
	_, err := runChward(t, "show", "--path", t.TempDir())
	require.Error(t, err)

	_, err = runChward(t, "teardown", "--path", t.TempDir())
	require.Error(t, err)
}

func TestSettingsFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	require.NoError(t, os.WriteFile(good, []byte("cluster_name: oximeter_cluster\ndeployment_dir: cluster\n"), 0o644))
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("clusters: 3\n"), 0o644))

	_, err := runChward(t, "gen-config", "--path", dir, "--settings", good, "--num-keepers", "1", "--num-replicas", "1")
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(dir, "cluster", "clickhouse-1", placement.ServerConfigFileName))
	require.NoError(t, err)
	require.Contains(t, string(data), "<oximeter_cluster>")

	// Flags override the settings file.
	_, err = runChward(t, "gen-config", "--path", dir, "--settings", good, "--deployment-dir", "other", "--num-keepers", "1", "--num-replicas", "1")
	require.NoError(t, err)
	require.DirExists(t, filepath.Join(dir, "other", "keeper-1"))

	_, err = runChward(t, "gen-config", "--path", dir, "--settings", bad)
	require.Error(t, err)

	_, err = runChward(t, "gen-config", "--path", dir, "--cluster-name", "bad-name")
	require.Error(t, err)
}

func TestUnexpectedArgs(t *testing.T) {
	_, err := runChward(t, "show", "--path", t.TempDir(), "extra")
	require.ErrorContains(t, err, "unexpected args")
}

func TestMissingRequiredFlag(t *testing.T) {
	_, err := runChward(t, "deploy")
	require.Error(t, err)

	_, err = runChward(t, "gen-config", "--path", t.TempDir(), "--num-keepers", "0")
	require.Error(t, err)
}
