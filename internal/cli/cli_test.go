package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/paramlist/internal/model"
)

// resetFlags restores every flag to its default; cobra keeps parsed values
// between Execute calls on the same command tree.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func run(t *testing.T, db string, args ...string) []byte {
	t.Helper()
	resetFlags(RootCmd)
	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(io.Discard)
	RootCmd.SetArgs(append([]string{"--db", db}, args...))
	require.NoError(t, RootCmd.Execute(), "paramlist %v", args)
	return out.Bytes()
}

func decode[T any](t *testing.T, b []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(b, &v), string(b))
	return v
}

func paramIDs(v listView) []string {
	var ids []string
	for _, p := range v.Parameters {
		ids = append(ids, p.ID)
	}
	return ids
}

func newDB(t *testing.T) string {
	return filepath.Join(t.TempDir(), "test.db")
}

func TestParamWorkflow(t *testing.T) {
	db := newDB(t)
	run(t, db, "list", "create", "enemy", "-c", "tuning")
	run(t, db, "param", "add", "-l", "enemy", "-k", "hp", "-t", "int", "--value", "5555")
	run(t, db, "param", "add", "-l", "enemy", "-k", "speed", "-t", "float", "--value", "2.5")
	run(t, db, "param", "add", "-l", "enemy", "-k", "spawn", "-t", "vector3", "--value", "1,2,3")

	res := decode[result](t, run(t, db, "param", "move", "up", "-l", "enemy", "-k", "speed"))
	require.True(t, res.OK)
	assert.Equal(t, 0, res.Parameter.Index)

	v := decode[listView](t, run(t, db, "list", "show", "enemy"))
	assert.Equal(t, "tuning", v.Comment)
	assert.Equal(t, []string{"speed", "hp", "spawn"}, paramIDs(v))
	assert.Equal(t, "2.5", v.Parameters[0].Value)
	assert.Equal(t, "5555", v.Parameters[1].Value)
	assert.Equal(t, "1,2,3", v.Parameters[2].Value)
}

func TestParamSoftFailures(t *testing.T) {
	db := newDB(t)
	run(t, db, "list", "create", "l")
	run(t, db, "param", "add", "-l", "l", "-k", "a", "-t", "bool", "--value", "true")

	res := decode[result](t, run(t, db, "param", "move", "up", "-l", "l", "-k", "a"))
	assert.False(t, res.OK)
	assert.Contains(t, res.Warning, "boundary")

	res = decode[result](t, run(t, db, "param", "rm", "-l", "l", "-k", "missing"))
	assert.False(t, res.OK)
	assert.Contains(t, res.Warning, "not found")

	res = decode[result](t, run(t, db, "param", "find", "-l", "l", "-k", "missing"))
	assert.False(t, res.OK)

	hist := decode[[]historyView](t, run(t, db, "history", "l"))
	assert.Len(t, hist, 1)
}

func TestParamDuplicateIDsByIndex(t *testing.T) {
	db := newDB(t)
	run(t, db, "list", "create", "l")
	run(t, db, "param", "add", "-l", "l", "-k", "x", "-t", "int", "--value", "1")
	run(t, db, "param", "add", "-l", "l", "-k", "x", "-t", "int", "--value", "2")

	res := decode[result](t, run(t, db, "param", "find", "-l", "l", "-k", "x"))
	assert.Equal(t, "1", res.Parameter.Value)

	res = decode[result](t, run(t, db, "param", "find", "-l", "l", "-i", "1"))
	assert.Equal(t, "2", res.Parameter.Value)

	run(t, db, "param", "rm", "-l", "l", "-k", "x")
	v := decode[listView](t, run(t, db, "list", "show", "l"))
	require.Len(t, v.Parameters, 1)
	assert.Equal(t, "2", v.Parameters[0].Value)
}

func TestObjectParameterClearedOnTypeChange(t *testing.T) {
	db := newDB(t)
	run(t, db, "list", "create", "scene")
	obj := decode[model.Object](t, run(t, db, "object", "add", "--kind", "texture", "--name", "grass.png"))
	require.NotEmpty(t, obj.ID)

	res := decode[result](t, run(t, db, "param", "add", "-l", "scene", "-k", "ground", "-t", "texture", "--object", obj.ID))
	require.NotNil(t, res.Parameter.Object)
	assert.Equal(t, obj, *res.Parameter.Object)

	res = decode[result](t, run(t, db, "param", "type", "int", "-l", "scene", "-k", "ground"))
	assert.True(t, res.OK)
	assert.Nil(t, res.Parameter.Object)
	assert.Equal(t, "0", res.Parameter.Value)

	objects := decode[[]model.Object](t, run(t, db, "object", "ls"))
	assert.Len(t, objects, 1)
}

func TestUndoCommand(t *testing.T) {
	db := newDB(t)
	run(t, db, "list", "create", "l")
	run(t, db, "param", "add", "-l", "l", "-k", "name", "-t", "string", "--value", "before")
	run(t, db, "param", "set", "after", "-l", "l", "-k", "name")

	v := decode[listView](t, run(t, db, "undo", "l"))
	require.Len(t, v.Parameters, 1)
	assert.Equal(t, "before", v.Parameters[0].Value)

	v = decode[listView](t, run(t, db, "undo", "l"))
	assert.Empty(t, v.Parameters)

	res := decode[result](t, run(t, db, "undo", "l"))
	assert.False(t, res.OK)
}

func TestListDupIsIndependent(t *testing.T) {
	db := newDB(t)
	run(t, db, "list", "create", "orig")
	run(t, db, "param", "add", "-l", "orig", "-k", "x", "-t", "int", "--value", "5555")

	dup := decode[listView](t, run(t, db, "list", "dup", "orig", "copy"))
	run(t, db, "param", "set", "9", "-l", "copy", "-k", "x")

	orig := decode[listView](t, run(t, db, "list", "show", "orig"))
	cp := decode[listView](t, run(t, db, "list", "show", "copy"))
	assert.NotEqual(t, orig.ID, dup.ID)
	assert.Equal(t, "5555", orig.Parameters[0].Value)
	assert.Equal(t, "9", cp.Parameters[0].Value)

	lists := decode[[]map[string]any](t, run(t, db, "list", "ls"))
	assert.Len(t, lists, 2)
}

func TestCheckCommand(t *testing.T) {
	db := newDB(t)
	run(t, db, "list", "create", "l")
	run(t, db, "param", "add", "-l", "l", "-k", "x", "-t", "int")
	run(t, db, "param", "add", "-l", "l", "-k", "x", "-t", "float")

	reports := decode[[]checkReport](t, run(t, db, "check"))
	require.Len(t, reports, 1)
	require.Len(t, reports[0].Issues, 1)
	assert.Equal(t, 1, reports[0].Issues[0].Index)
	assert.Contains(t, reports[0].Issues[0].Problem, "hidden")
}

func TestExportImportYAML(t *testing.T) {
	src := newDB(t)
	run(t, src, "list", "create", "enemy")
	obj := decode[model.Object](t, run(t, src, "object", "add", "--kind", "scene-object", "--name", "player"))
	run(t, src, "param", "add", "-l", "enemy", "-k", "target", "-t", "scene-object", "--object", obj.ID)
	run(t, src, "param", "add", "-l", "enemy", "-k", "tint", "-t", "color", "--value", "1,0.5,0,1")

	file := filepath.Join(t.TempDir(), "export.yaml")
	require.NoError(t, os.WriteFile(file, run(t, src, "export", "-f", "yaml"), 0o644))

	dst := newDB(t)
	out := decode[map[string]any](t, run(t, dst, "import", file))
	assert.Equal(t, float64(1), out["imported"])

	v := decode[listView](t, run(t, dst, "list", "show", "enemy"))
	require.Len(t, v.Parameters, 2)
	require.NotNil(t, v.Parameters[0].Object)
	assert.Equal(t, obj, *v.Parameters[0].Object)
	assert.Equal(t, "1,0.5,0,1", v.Parameters[1].Value)
}

func TestTypesCommand(t *testing.T) {
	types := decode[[]map[string]any](t, run(t, newDB(t), "types"))
	require.Len(t, types, len(model.TypeKeys()))
	assert.Equal(t, "bool", types[0]["key"])
	assert.Equal(t, "texture", types[len(types)-1]["minor"])
}
