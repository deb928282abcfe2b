package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/slabtower/pkg/brick"
	"github.com/matzehuels/slabtower/pkg/errors"
)

// readInput reads the named file, or standard input for "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read stdin")
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	return data, nil
}

// writeOutput writes data to path, or to the command's output when path is
// empty.
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	printFile(path)
	return nil
}

// parseAxis maps the --axis flag to a horizontal axis.
func parseAxis(s string) (brick.Axis, error) {
	switch s {
	case "x", "X":
		return brick.AxisX, nil
	case "y", "Y":
		return brick.AxisY, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "unknown axis %q (want x or y)", s)
}
