// Copyright 2015-2017 Piprate Limited
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/latticework/jsonld/ld"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:     "jsonld2rdf",
		Short:   "Expand JSON-LD documents and materialize them into RDF",
		Version: version,
	}

	rootCmd.AddCommand(expandCmd())
	rootCmd.AddCommand(rdfCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func expandCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expand [file]",
		Short: "Run the Expansion algorithm and print the result as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, _ := cmd.Flags().GetString("base")

			input, err := readDocument(args[0])
			if err != nil {
				return err
			}

			opts := ld.NewJsonLdOptions(base)
			processor := ld.NewJsonLdProcessor()
			expanded, err := processor.Expand(input, opts)
			if err != nil {
				return fmt.Errorf("expansion failed: %w", err)
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(expanded)
		},
	}

	cmd.Flags().String("base", "", "Base IRI to resolve relative IRIs against")

	return cmd
}

func rdfCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rdf [file]",
		Short: "Expand a JSON-LD document and print its RDF dataset as N-Quads",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, _ := cmd.Flags().GetString("base")
			generalized, _ := cmd.Flags().GetBool("generalized")

			input, err := readDocument(args[0])
			if err != nil {
				return err
			}

			opts := ld.NewJsonLdOptions(base)
			opts.ProduceGeneralizedRdf = generalized

			processor := ld.NewJsonLdProcessor()
			nquads, err := processor.ToRDF(input, opts, "application/nquads")
			if err != nil {
				return fmt.Errorf("to-RDF failed: %w", err)
			}

			fmt.Print(nquads)
			return nil
		},
	}

	cmd.Flags().String("base", "", "Base IRI to resolve relative IRIs against")
	cmd.Flags().Bool("generalized", false, "Allow blank node predicates in the output dataset")

	return cmd
}

func readDocument(path string) (interface{}, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	document, err := ld.DocumentFromReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return document, nil
}
