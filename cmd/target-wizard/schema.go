package main

import (
	"encoding/json"
	"fmt"

	"github.com/brizzai/target-wizard/internal/target"
	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema of a target descriptor file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		data, err := json.MarshalIndent(descriptorSchema(), "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	},
}

// descriptorSchema reflects the wire shape accepted by --from-file
func descriptorSchema() *jsonschema.Schema {
	r := &jsonschema.Reflector{ExpandedStruct: true}
	s := r.Reflect(&target.Descriptor{})
	s.Title = "Gateway target"
	s.Description = "A named gateway target with one transport payload matching type"
	return s
}
