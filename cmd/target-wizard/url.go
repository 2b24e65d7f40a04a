package main

import (
	"fmt"

	"github.com/brizzai/target-wizard/internal/urlcodec"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var urlCmd = &cobra.Command{
	Use:   "url",
	Short: "Convert between a target URL and its host, port and path",
}

var urlDecodeCmd = &cobra.Command{
	Use:   "decode URL",
	Short: "Split a URL into host, port and path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := urlcodec.Decode(args[0])
		if err != nil {
			return err
		}
		return pterm.DefaultTable.WithData(pterm.TableData{
			{"host", e.Host},
			{"port", fmt.Sprint(e.Port)},
			{"path", e.Path},
		}).Render()
	},
}

var urlEncodeOpts struct {
	host               string
	port               int
	path               string
	insecureSkipVerify bool
}

var urlEncodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Build the URL the wizard shows for a host, port and path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if urlEncodeOpts.host == "" {
			return fmt.Errorf("--host is required")
		}
		_, err := fmt.Fprintln(cmd.OutOrStdout(), urlcodec.Encode(urlcodec.Endpoint{
			Host: urlEncodeOpts.host,
			Port: urlEncodeOpts.port,
			Path: urlEncodeOpts.path,
		}, urlEncodeOpts.insecureSkipVerify))
		return err
	},
}

func init() {
	flags := urlEncodeCmd.Flags()
	flags.StringVar(&urlEncodeOpts.host, "host", "", "Target host")
	flags.IntVar(&urlEncodeOpts.port, "port", urlcodec.DefaultHTTPPort, "Target port")
	flags.StringVar(&urlEncodeOpts.path, "path", "/", "Target path, including any query")
	flags.BoolVar(&urlEncodeOpts.insecureSkipVerify, "insecure-skip-verify", false, "Render an https URL")

	urlCmd.AddCommand(urlDecodeCmd, urlEncodeCmd)
}
