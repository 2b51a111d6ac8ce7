package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rcliao/paramlist/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import lists from JSON or YAML",
		Long:  "Import lists (stdin or file). Expects the format produced by export. Files ending in .yaml or .yml are read as YAML; stdin uses --format.",
		Args:  cobra.MaximumNArgs(1),
		Run:   runImport,
	}

	RootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) {
	var (
		data   []byte
		err    error
		asYAML = formatFlag == "yaml" || formatFlag == "yml"
	)
	if len(args) == 1 && args[0] != "-" {
		data, err = os.ReadFile(args[0])
		ext := strings.ToLower(filepath.Ext(args[0]))
		asYAML = ext == ".yaml" || ext == ".yml"
	} else {
		data, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		exitErr("read input", err)
	}

	exp, err := decodeExport(data, asYAML)
	if err != nil {
		exitErr("parse input", err)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	imported, err := s.Import(cmd.Context(), exp)
	if err != nil {
		exitErr("import", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"imported":%d}`+"\n", imported)
}

func decodeExport(data []byte, asYAML bool) (*store.Export, error) {
	var exp store.Export
	if asYAML {
		if err := yaml.Unmarshal(data, &exp); err != nil {
			return nil, fmt.Errorf("yaml: %w", err)
		}
		return &exp, nil
	}
	if err := json.Unmarshal(data, &exp); err != nil {
		return nil, fmt.Errorf("json: %w", err)
	}
	return &exp, nil
}
