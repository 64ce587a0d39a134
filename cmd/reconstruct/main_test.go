package main

import (
	"bytes"
	"context"
	"encoding/json"
	"math/big"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Pro7ech/sss/recovery"
)

const testcase2Secret = "26515904809718792824515720271528988540880"

func testdata(name string) string {
	return filepath.Join("..", "..", "testdata", name)
}

func runCmd(args ...string) (code int, stdout, stderr string) {
	var out, errOut bytes.Buffer
	if args == nil {
		// cobra falls back to os.Args on nil
		args = []string{}
	}
	code = execute(context.Background(), args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestExecute(t *testing.T) {

	t.Run("Usage", func(t *testing.T) {
		for _, args := range [][]string{{}, {testdata("testcase1.json")}} {
			code, stdout, stderr := runCmd(args...)
			require.Equal(t, 1, code)
			require.Empty(t, stdout)
			require.Contains(t, stderr, "Please provide at least two JSON files containing the secret shares")
			require.Contains(t, stderr, "Usage:")
		}
	})

	t.Run("Text", func(t *testing.T) {
		code, stdout, stderr := runCmd(testdata("testcase1.json"), testdata("testcase2.json"))
		require.Equal(t, 0, code, stderr)
		require.Equal(t, "3\n"+testcase2Secret+"\n", stdout)
	})

	t.Run("YAMLAndWorkers", func(t *testing.T) {
		code, stdout, stderr := runCmd("--workers", "3", testdata("testcase1.yaml"), testdata("linear.json"), testdata("testcase2.json"))
		require.Equal(t, 0, code, stderr)
		require.Equal(t, "3\n0\n"+testcase2Secret+"\n", stdout)
	})

	t.Run("JSON", func(t *testing.T) {
		code, stdout, stderr := runCmd("-o", "json", testdata("testcase1.json"), testdata("testcase2.json"))
		require.Equal(t, 0, code, stderr)

		lines := strings.Split(strings.TrimSpace(stdout), "\n")
		require.Len(t, lines, 2)

		var res jsonResult
		require.NoError(t, json.Unmarshal([]byte(lines[1]), &res))
		require.Equal(t, testdata("testcase2.json"), res.Source)
		require.Equal(t, 10, res.N)
		require.Equal(t, 7, res.K)
		require.Equal(t, testcase2Secret, res.Secret.String())
	})

	t.Run("Mode", func(t *testing.T) {
		code, stdout, _ := runCmd(testdata("truncation.json"), testdata("linear.json"))
		require.Equal(t, 0, code)
		require.Equal(t, "-1\n0\n", stdout)

		code, stdout, _ = runCmd("--mode", "exact", testdata("truncation.json"), testdata("linear.json"))
		require.Equal(t, 0, code)
		require.Equal(t, "0\n0\n", stdout)
	})

	t.Run("FirstFailureHalts", func(t *testing.T) {
		code, stdout, stderr := runCmd("--verify", testdata("testcase1.json"), testdata("inconsistent.json"), testdata("linear.json"))
		require.Equal(t, 1, code)
		require.Equal(t, "3\n", stdout)
		require.Contains(t, stderr, "Error during secret reconstruction:")
		require.Contains(t, stderr, "inconsistent.json")
		require.Contains(t, stderr, "Please check your input files and try again.")
	})

	t.Run("MissingFile", func(t *testing.T) {
		code, stdout, stderr := runCmd(testdata("missing.json"), testdata("testcase1.json"))
		require.Equal(t, 1, code)
		require.Empty(t, stdout)
		require.Contains(t, stderr, "missing.json")
	})

	t.Run("InvalidFlags", func(t *testing.T) {
		for _, args := range [][]string{
			{"--mode", "rounded", testdata("testcase1.json"), testdata("linear.json")},
			{"--output", "xml", testdata("testcase1.json"), testdata("linear.json")},
			{"--unknown", testdata("testcase1.json"), testdata("linear.json")},
		} {
			code, stdout, stderr := runCmd(args...)
			require.Equal(t, 1, code, args)
			require.Empty(t, stdout)
			require.NotContains(t, stderr, "Error during secret reconstruction")
		}
	})
}

func TestTextPrinter(t *testing.T) {
	var buf bytes.Buffer

	p := &textPrinter{w: &buf, banners: true}
	require.NoError(t, p.Print(0, &recovery.Result{Secret: big.NewInt(3)}))
	require.NoError(t, p.Print(1, &recovery.Result{Secret: big.NewInt(-7)}))

	require.Equal(t, "Processing Test Case 1:\nRecovered Secret: 3\n\nProcessing Test Case 2:\nRecovered Secret: -7\n", buf.String())

	require.False(t, isTerminal(&buf))
}
