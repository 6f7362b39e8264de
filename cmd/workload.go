package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/threefoldtech/tfgrid-sdk-go/grid-workloads/codec"
	"github.com/threefoldtech/tfgrid-sdk-go/grid-workloads/validation"
	"github.com/threefoldtech/tfgrid-sdk-go/grid-workloads/zos"
)

// errInvalid is returned when a workload file breaks some invariants, the
// violations are already printed
var errInvalid = errors.New("workload is not valid")

var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "decode a workload file and print its canonical encoding",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := cmd.Flags().GetString("file")
		if err != nil {
			return errors.Wrapf(err, "invalid file input '%s'", file)
		}

		output, err := cmd.Flags().GetString("output")
		if err != nil {
			return errors.Wrapf(err, "invalid output input '%s'", output)
		}

		wl, err := codec.Load(file)
		if err != nil {
			return err
		}

		return encode(cmd.OutOrStdout(), wl, output)
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "validate a workload file and print every violation",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := cmd.Flags().GetString("file")
		if err != nil {
			return errors.Wrapf(err, "invalid file input '%s'", file)
		}

		wl, err := codec.Load(file)
		if err != nil {
			return err
		}

		return validate(cmd.OutOrStdout(), wl)
	},
}

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "print a workload summary, its resource requirements and its redacted content",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := cmd.Flags().GetString("file")
		if err != nil {
			return errors.Wrapf(err, "invalid file input '%s'", file)
		}

		wl, err := codec.Load(file)
		if err != nil {
			return err
		}

		return describe(cmd.OutOrStdout(), wl)
	},
}

func encode(w io.Writer, wl zos.Workload, format string) error {
	var data []byte
	var err error

	switch strings.ToLower(format) {
	case "json":
		data, err = codec.Encode(wl)
		data = append(data, '\n')
	case "yaml", "yml":
		data, err = codec.EncodeYAML(wl)
	default:
		return fmt.Errorf("invalid output format '%s'", format)
	}
	if err != nil {
		return err
	}

	_, err = w.Write(data)
	return err
}

func validate(w io.Writer, wl zos.Workload) error {
	violations := validation.Violations(validation.Validate(wl))
	if len(violations) == 0 {
		_, err := fmt.Fprintln(w, "workload is valid")
		return err
	}

	t := table.NewWriter()
	t.AppendHeader(table.Row{"Field", "Reason"})
	for _, v := range violations {
		t.AppendRow(table.Row{v.Field, v.Reason})
	}
	t.SetStyle(table.StyleLight)

	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		return err
	}
	return errInvalid
}

func describe(w io.Writer, wl zos.Workload) error {
	req := wl.Requirements()

	t := table.NewWriter()
	t.AppendHeader(table.Row{"Node", "Workload", "Version", "Type", "CRU", "MRU", "SRU", "HRU", "IPv4"})
	t.AppendRow(table.Row{
		wl.NodeID,
		wl.WorkloadID,
		wl.Version,
		wl.Type(),
		req.CRU,
		req.MRU,
		req.SRU,
		req.HRU,
		req.IPV4U,
	})
	t.SetStyle(table.StyleLight)

	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		return err
	}
	return codec.Export(w, wl)
}
